// Package board 提供公告看板的客户端数据层。
// 远端记录服务是唯一的权威数据源，远端不可用时透明回退到本地持久化快照，
// 保证展示层在任何网络状况下都能拿到一份一致的公告集。
package board

import (
	"context"

	"noticeboard/internal/model"
)

// Gateway 远端网关，负责访问远端记录服务。
// 网络故障、非2xx响应、响应格式错误一律用ErrUnavailable表示，调用方不区分故障种类。
type Gateway interface {
	// List 拉取全部公告
	List(ctx context.Context) ([]model.Announcement, error)
	// Create 创建公告，返回远端分配的ID
	Create(ctx context.Context, draft model.Draft) (int64, error)
	// Update 更新公告的可变字段，目标不存在时返回ErrNotFound
	Update(ctx context.Context, id int64, draft model.Draft) error
	// Delete 删除公告，目标不存在时返回ErrNotFound
	Delete(ctx context.Context, id int64) error
	// Authenticate 校验管理员口令，成功时返回不透明Token，口令错误时返回ErrInvalidCredential
	Authenticate(ctx context.Context, secret string) (string, error)
}

// Cache 本地缓存，设备范围内的同步键值存储。
// 写入是整个快照的全量覆盖，不做增量修补，避免局部修补导致的数据分叉。
type Cache interface {
	// Snapshot 读取缓存的公告快照，从未写入时返回空序列
	Snapshot() ([]model.Announcement, error)
	// Persist 全量覆盖公告快照
	Persist(announcements []model.Announcement) error
}

// Session 会话级的弹窗关闭记录，会话结束即丢弃，不跨会话持久化
type Session interface {
	// Dismissed 该公告在本会话中是否已被关闭
	Dismissed(id int64) bool
	// RecordDismissal 记录一次关闭，本会话内该公告不再参与弹窗选择
	RecordDismissal(id int64)
}
