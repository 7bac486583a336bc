package board

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"noticeboard/internal/model"
	"noticeboard/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"k8s.io/apimachinery/pkg/util/rand"
)

// Store 公告调和存储。
// 每个操作都先走主通道（远端网关），仅在ErrUnavailable时落入回退通道（本地缓存）。
// 两条通道的数据从不合并，回退快照只是远端不可达期间的替代视图。
type Store struct {
	gateway Gateway
	cache   Cache
	logger  *logger.Logger

	// fallbackSecretHash 本地回退口令的bcrypt哈希，为空时认证不提供回退
	fallbackSecretHash string

	now func() time.Time

	mu          sync.Mutex
	lastLocalID int64
}

// NewStore 创建公告调和存储实例
func NewStore(gateway Gateway, cache Cache, fallbackSecretHash string, logger *logger.Logger) *Store {
	return &Store{
		gateway:            gateway,
		cache:              cache,
		logger:             logger,
		fallbackSecretHash: fallbackSecretHash,
		now:                time.Now,
	}
}

// Refresh 拉取当前公告集。
// 远端成功时结果同步镜像到本地缓存，保证在线期间回退视图不过期；
// 远端不可用时原样返回本地快照。结果始终按ID去重并按创建时间倒序排列。
func (s *Store) Refresh(ctx context.Context) ([]model.Announcement, error) {
	list, err := s.gateway.List(ctx)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			s.logger.Warn("远端服务不可用，使用本地缓存", "error", err)
			snapshot, err := s.cache.Snapshot()
			if err != nil {
				return nil, err
			}
			return normalize(snapshot), nil
		}
		return nil, err
	}

	resolved := normalize(list)
	if err := s.cache.Persist(resolved); err != nil {
		// 镜像失败不影响本次结果，只是回退视图没有更新
		s.logger.Warn("镜像公告快照到本地缓存失败", "error", err)
	}
	return resolved, nil
}

// Create 创建公告。
// 远端成功时返回远端分配的ID，调用方需要重新Refresh才能看到新公告；
// 远端不可用时在本地合成一条公告插入快照队头，该操作在回退通道内即告完成。
func (s *Store) Create(ctx context.Context, draft model.Draft) (int64, error) {
	id, err := s.gateway.Create(ctx, draft)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return 0, err
	}

	s.logger.Warn("远端服务不可用，在本地创建公告", "error", err)

	snapshot, snapErr := s.cache.Snapshot()
	if snapErr != nil {
		return 0, snapErr
	}

	announcement := model.Announcement{
		ID:        s.nextLocalID(),
		Title:     draft.Title,
		Content:   draft.Content,
		IsPopup:   draft.IsPopup,
		CreatedAt: s.now(),
	}

	updated := append([]model.Announcement{announcement}, snapshot...)
	if err := s.cache.Persist(updated); err != nil {
		return 0, err
	}
	return announcement.ID, nil
}

// Update 更新公告的可变字段，ID和创建时间保持不变。
// 远端不可用时在本地快照中原地替换，快照中找不到目标时返回ErrNotFound。
func (s *Store) Update(ctx context.Context, id int64, draft model.Draft) error {
	err := s.gateway.Update(ctx, id, draft)
	if err == nil || !errors.Is(err, ErrUnavailable) {
		return err
	}

	s.logger.Warn("远端服务不可用，在本地更新公告", "id", id, "error", err)

	snapshot, snapErr := s.cache.Snapshot()
	if snapErr != nil {
		return snapErr
	}

	found := false
	for i := range snapshot {
		if snapshot[i].ID == id {
			snapshot[i].Title = draft.Title
			snapshot[i].Content = draft.Content
			snapshot[i].IsPopup = draft.IsPopup
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	return s.cache.Persist(snapshot)
}

// Delete 删除公告。两条通道上删除都是幂等的：
// 远端返回ErrNotFound视为已经删除；本地快照中没有目标时同样算成功。
func (s *Store) Delete(ctx context.Context, id int64) error {
	err := s.gateway.Delete(ctx, id)
	if err == nil || errors.Is(err, ErrNotFound) {
		return nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return err
	}

	s.logger.Warn("远端服务不可用，在本地删除公告", "id", id, "error", err)

	snapshot, snapErr := s.cache.Snapshot()
	if snapErr != nil {
		return snapErr
	}

	updated := snapshot[:0:0]
	for _, a := range snapshot {
		if a.ID != id {
			updated = append(updated, a)
		}
	}
	return s.cache.Persist(updated)
}

// Authenticate 管理员认证。
// 远端不可用且配置了回退口令哈希时，在本地比对口令并签发一个本地Token；
// 口令错误（ErrInvalidCredential）从不触发回退。
func (s *Store) Authenticate(ctx context.Context, secret string) (string, error) {
	token, err := s.gateway.Authenticate(ctx, secret)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return "", err
	}
	if s.fallbackSecretHash == "" {
		return "", err
	}

	s.logger.Warn("远端服务不可用，使用本地口令认证", "error", err)

	if bcrypt.CompareHashAndPassword([]byte(s.fallbackSecretHash), []byte(secret)) != nil {
		return "", ErrInvalidCredential
	}
	return "local-" + rand.String(24), nil
}

// nextLocalID 生成单调递增的本地公告ID。
// 以毫秒时间戳为基准避免与远端自增ID段冲突，时钟未前进时在上一个ID上加一。
func (s *Store) nextLocalID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastLocalID {
		id = s.lastLocalID + 1
	}
	s.lastLocalID = id
	return id
}

// normalize 按ID去重（保留先出现的记录）并按创建时间倒序稳定排序
func normalize(announcements []model.Announcement) []model.Announcement {
	seen := make(map[int64]struct{}, len(announcements))
	result := make([]model.Announcement, 0, len(announcements))
	for _, a := range announcements {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		result = append(result, a)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
