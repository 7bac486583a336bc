package repository

import (
	"context"
	"database/sql"
	"errors"

	"noticeboard/internal/model"

	"github.com/jmoiron/sqlx"
)

// ErrAnnouncementNotFound 目标公告不存在
var ErrAnnouncementNotFound = errors.New("公告不存在")

// AnnouncementRepository 公告存储库
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository 创建公告存储库实例
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// InitSchema 初始化公告表
func (r *AnnouncementRepository) InitSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS announcements (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			is_popup TINYINT(1) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) DEFAULT CHARSET=utf8mb4
	`
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// GetAnnouncements 获取全部公告，按创建时间倒序排列
// created_at相同时后插入的排在前面，与离线创建时插入队头的顺序保持一致
func (r *AnnouncementRepository) GetAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	announcements := []model.Announcement{}
	query := `SELECT * FROM announcements ORDER BY created_at DESC, id DESC`
	err := r.db.SelectContext(ctx, &announcements, query)
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

// GetAnnouncementByID 根据ID获取公告
func (r *AnnouncementRepository) GetAnnouncementByID(ctx context.Context, id int64) (*model.Announcement, error) {
	var announcement model.Announcement
	query := "SELECT * FROM announcements WHERE id = ?"
	err := r.db.GetContext(ctx, &announcement, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &announcement, nil
}

// CreateAnnouncement 创建公告，返回数据库分配的自增ID
func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, draft model.Draft) (int64, error) {
	query := "INSERT INTO announcements (title, content, is_popup) VALUES (?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query, draft.Title, draft.Content, draft.IsPopup)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateAnnouncement 更新公告的可变字段，创建时间保持不变
func (r *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, id int64, draft model.Draft) error {
	query := "UPDATE announcements SET title = ?, content = ?, is_popup = ? WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, draft.Title, draft.Content, draft.IsPopup, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// 字段未变化时MySQL也会返回0行，需要再确认一次记录是否存在
		if _, err := r.GetAnnouncementByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAnnouncement 删除公告
func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	query := "DELETE FROM announcements WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
