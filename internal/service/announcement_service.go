package service

import (
	"context"
	"encoding/json"
	"time"

	"noticeboard/internal/model"
	"noticeboard/internal/repository"
	"noticeboard/pkg/async"
	"noticeboard/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// 公告列表缓存键及有效期
const (
	announcementListCacheKey = "announcements:list"
	announcementCacheTTL     = 5 * time.Minute
)

// AnnouncementService 公告服务
type AnnouncementService struct {
	announcementRepo *repository.AnnouncementRepository
	redisClient      *redis.Client
	worker           *async.Worker
	logger           *logger.Logger
}

// NewAnnouncementService 创建公告服务实例
func NewAnnouncementService(announcementRepo *repository.AnnouncementRepository, redisClient *redis.Client, worker *async.Worker, logger *logger.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		redisClient:      redisClient,
		worker:           worker,
		logger:           logger,
	}
}

// GetAnnouncements 获取全部公告，按创建时间倒序
func (s *AnnouncementService) GetAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	// 尝试从缓存获取
	cachedData, err := s.redisClient.Get(ctx, announcementListCacheKey).Bytes()
	if err == nil {
		var result []model.Announcement
		if err := json.Unmarshal(cachedData, &result); err == nil {
			return result, nil
		}
	}

	// 缓存未命中，从数据库获取
	announcements, err := s.announcementRepo.GetAnnouncements(ctx)
	if err != nil {
		s.logger.Error("获取公告列表失败", "error", err)
		return nil, err
	}

	// 将结果存入缓存
	if data, err := json.Marshal(announcements); err == nil {
		s.redisClient.Set(ctx, announcementListCacheKey, data, announcementCacheTTL)
	}

	return announcements, nil
}

// CreateAnnouncement 创建公告，返回新公告ID
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, draft model.Draft) (int64, error) {
	id, err := s.announcementRepo.CreateAnnouncement(ctx, draft)
	if err != nil {
		s.logger.Error("创建公告失败", "error", err)
		return 0, err
	}
	s.invalidateCache()
	return id, nil
}

// UpdateAnnouncement 更新公告
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, id int64, draft model.Draft) error {
	if err := s.announcementRepo.UpdateAnnouncement(ctx, id, draft); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// DeleteAnnouncement 删除公告
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id int64) error {
	if err := s.announcementRepo.DeleteAnnouncement(ctx, id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// invalidateCache 异步删除列表缓存
func (s *AnnouncementService) invalidateCache() {
	s.worker.AddTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.redisClient.Del(ctx, announcementListCacheKey).Err(); err != nil {
			s.logger.Error("删除公告列表缓存失败", "key", announcementListCacheKey, "error", err)
		}
	})
}
