package admin

import (
	"errors"
	"net/http"
	"strconv"

	"noticeboard/internal/constants"
	"noticeboard/internal/repository"
	"noticeboard/internal/service"
	"noticeboard/internal/types"
	"noticeboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AnnouncementAdminHandler 公告管理处理器
type AnnouncementAdminHandler struct {
	announcementService *service.AnnouncementService
	logger              *logger.Logger
}

// NewAnnouncementAdminHandler 创建公告管理处理器实例
func NewAnnouncementAdminHandler(announcementService *service.AnnouncementService, logger *logger.Logger) *AnnouncementAdminHandler {
	return &AnnouncementAdminHandler{
		announcementService: announcementService,
		logger:              logger,
	}
}

// CreateAnnouncement 创建公告
// @Summary 创建公告
// @Description 管理员创建新公告，返回新公告ID
// @Tags 公告管理
// @Accept json
// @Produce json
// @Param announcement body types.DraftRequest true "公告信息"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/announcements [post]
func (h *AnnouncementAdminHandler) CreateAnnouncement(c *gin.Context) {
	var req types.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  constants.ErrInvalidParams + "：" + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	id, err := h.announcementService.CreateAnnouncement(ctx, types.DraftFromRequest(req))
	if err != nil {
		h.logger.Error("创建公告失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code": 500,
			"msg":  constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  constants.SuccessCreate,
		"id":   id,
	})
}

// UpdateAnnouncement 更新公告
// @Summary 更新公告
// @Description 管理员更新公告的标题、内容和弹窗标记
// @Tags 公告管理
// @Accept json
// @Produce json
// @Param id path int true "公告ID"
// @Param announcement body types.DraftRequest true "公告信息"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/announcements/{id} [put]
func (h *AnnouncementAdminHandler) UpdateAnnouncement(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  constants.ErrInvalidParams,
		})
		return
	}

	var req types.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  constants.ErrInvalidParams + "：" + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	if err := h.announcementService.UpdateAnnouncement(ctx, id, types.DraftFromRequest(req)); err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"code": 404,
				"msg":  constants.ErrAnnouncementNotFound,
			})
			return
		}
		h.logger.Error("更新公告失败", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code": 500,
			"msg":  constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  constants.SuccessUpdate,
	})
}

// DeleteAnnouncement 删除公告
// @Summary 删除公告
// @Description 管理员删除公告，目标不存在时返回404
// @Tags 公告管理
// @Accept json
// @Produce json
// @Param id path int true "公告ID"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/admin/announcements/{id} [delete]
func (h *AnnouncementAdminHandler) DeleteAnnouncement(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  constants.ErrInvalidParams,
		})
		return
	}

	ctx := c.Request.Context()
	if err := h.announcementService.DeleteAnnouncement(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"code": 404,
				"msg":  constants.ErrAnnouncementNotFound,
			})
			return
		}
		h.logger.Error("删除公告失败", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code": 500,
			"msg":  constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  constants.SuccessDelete,
	})
}
