package middleware

import (
	"context"
	"net/http"

	"noticeboard/internal/constants"
	"noticeboard/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminAuth 管理员认证中间件
func AdminAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从请求头获取Token
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrUnauthorized})
			c.Abort()
			return
		}

		// 验证Token
		valid, err := authService.VerifyToken(context.Background(), token)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
			c.Abort()
			return
		}
		if !valid {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrInvalidToken})
			c.Abort()
			return
		}

		c.Next()
	}
}
