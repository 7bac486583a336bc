package handler

import (
	"errors"
	"net/http"

	"noticeboard/internal/constants"
	"noticeboard/internal/service"
	"noticeboard/internal/types"
	"noticeboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler 管理员认证处理器
type AuthHandler struct {
	authService *service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(authService *service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login 管理员登录
// @Summary 管理员登录
// @Description 校验管理员密码，成功时返回Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param login body types.LoginRequest true "登录信息"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  constants.ErrInvalidParams,
		})
		return
	}

	ctx := c.Request.Context()
	token, err := h.authService.Login(ctx, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordIncorrect) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": 401,
				"msg":  constants.ErrPasswordIncorrect,
			})
			return
		}
		h.logger.Error("管理员登录失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code": 500,
			"msg":  constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":  200,
		"msg":   constants.SuccessLogin,
		"token": token,
	})
}
