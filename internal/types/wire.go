package types

import (
	"time"

	"noticeboard/internal/model"
)

// 线上协议中is_popup使用0/1整数编码，created_at使用RFC3339字符串，
// 与领域模型之间的转换统一放在这里，服务端处理器和客户端网关共用同一套编码。

// Response 通用响应信封
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// AnnouncementWire 公告的线上表示
type AnnouncementWire struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsPopup   int    `json:"is_popup"`
	CreatedAt string `json:"created_at"`
}

// DraftRequest 创建/更新公告请求体
type DraftRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	IsPopup int    `json:"is_popup"`
}

// LoginRequest 管理员登录请求体
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// ToWire 将公告模型转换为线上表示
func ToWire(a model.Announcement) AnnouncementWire {
	isPopup := 0
	if a.IsPopup {
		isPopup = 1
	}
	return AnnouncementWire{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		IsPopup:   isPopup,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

// ToWireList 批量转换公告模型
func ToWireList(list []model.Announcement) []AnnouncementWire {
	wires := make([]AnnouncementWire, 0, len(list))
	for _, a := range list {
		wires = append(wires, ToWire(a))
	}
	return wires
}

// FromWire 将线上表示还原为公告模型
func FromWire(w AnnouncementWire) (model.Announcement, error) {
	createdAt, err := time.Parse(time.RFC3339, w.CreatedAt)
	if err != nil {
		return model.Announcement{}, err
	}
	return model.Announcement{
		ID:        w.ID,
		Title:     w.Title,
		Content:   w.Content,
		IsPopup:   w.IsPopup != 0,
		CreatedAt: createdAt,
	}, nil
}

// DraftFromRequest 将请求体转换为公告草稿
func DraftFromRequest(req DraftRequest) model.Draft {
	return model.Draft{
		Title:   req.Title,
		Content: req.Content,
		IsPopup: req.IsPopup != 0,
	}
}

// DraftToRequest 将公告草稿转换为请求体
func DraftToRequest(d model.Draft) DraftRequest {
	isPopup := 0
	if d.IsPopup {
		isPopup = 1
	}
	return DraftRequest{
		Title:   d.Title,
		Content: d.Content,
		IsPopup: isPopup,
	}
}
