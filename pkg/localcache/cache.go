// Package localcache 提供设备范围的本地公告快照存储和会话级弹窗关闭记录
package localcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"noticeboard/internal/model"
)

const snapshotFileName = "announcements.json"

// Cache 文件快照存储，实现board.Cache。
// 每次写入全量覆盖快照文件，读写都是同步的。
type Cache struct {
	dir string
}

// New 创建文件快照存储，快照保存在dir下
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Snapshot 读取缓存的公告快照，快照文件不存在时返回空序列
func (c *Cache) Snapshot() ([]model.Announcement, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, snapshotFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Announcement{}, nil
		}
		return nil, fmt.Errorf("读取公告快照失败: %w", err)
	}

	var announcements []model.Announcement
	if err := json.Unmarshal(data, &announcements); err != nil {
		return nil, fmt.Errorf("解析公告快照失败: %w", err)
	}
	return announcements, nil
}

// Persist 全量覆盖公告快照
func (c *Cache) Persist(announcements []model.Announcement) error {
	data, err := json.MarshalIndent(announcements, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化公告快照失败: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("创建缓存目录失败: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, snapshotFileName), data, 0600); err != nil {
		return fmt.Errorf("写入公告快照失败: %w", err)
	}
	return nil
}
