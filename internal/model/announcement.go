package model

import "time"

// Announcement 公告模型
// IsPopup 在领域模型中始终是布尔值，数据库和线上协议中的0/1编码由边界层负责转换
type Announcement struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	IsPopup   bool      `db:"is_popup" json:"is_popup"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Draft 公告草稿，创建和更新时提交的可变字段
type Draft struct {
	Title   string
	Content string
	IsPopup bool
}
