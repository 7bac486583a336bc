package board

import (
	"context"
	"testing"
	"time"

	"noticeboard/internal/model"
	"noticeboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeGateway 内存实现的远端网关，可以整体切换为不可用状态
type fakeGateway struct {
	unavailable bool
	listResult  []model.Announcement
	createID    int64
	updateErr   error
	deleteErr   error
	authToken   string
	authErr     error

	deleteCalls int
}

func (g *fakeGateway) List(ctx context.Context) ([]model.Announcement, error) {
	if g.unavailable {
		return nil, ErrUnavailable
	}
	return g.listResult, nil
}

func (g *fakeGateway) Create(ctx context.Context, draft model.Draft) (int64, error) {
	if g.unavailable {
		return 0, ErrUnavailable
	}
	return g.createID, nil
}

func (g *fakeGateway) Update(ctx context.Context, id int64, draft model.Draft) error {
	if g.unavailable {
		return ErrUnavailable
	}
	return g.updateErr
}

func (g *fakeGateway) Delete(ctx context.Context, id int64) error {
	g.deleteCalls++
	if g.unavailable {
		return ErrUnavailable
	}
	return g.deleteErr
}

func (g *fakeGateway) Authenticate(ctx context.Context, secret string) (string, error) {
	if g.unavailable {
		return "", ErrUnavailable
	}
	if g.authErr != nil {
		return "", g.authErr
	}
	return g.authToken, nil
}

// fakeCache 内存实现的本地缓存
type fakeCache struct {
	snapshot     []model.Announcement
	persistCalls int
}

func (c *fakeCache) Snapshot() ([]model.Announcement, error) {
	result := make([]model.Announcement, len(c.snapshot))
	copy(result, c.snapshot)
	return result, nil
}

func (c *fakeCache) Persist(announcements []model.Announcement) error {
	c.persistCalls++
	c.snapshot = make([]model.Announcement, len(announcements))
	copy(c.snapshot, announcements)
	return nil
}

func newTestStore(gateway Gateway, cache Cache) *Store {
	return NewStore(gateway, cache, "", logger.NewLogger("error"))
}

func TestRefreshMirrorsRemoteResultToCache(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	remote := []model.Announcement{
		{ID: 1, Title: "第一条", CreatedAt: base},
		{ID: 2, Title: "第二条", CreatedAt: base.Add(time.Hour)},
	}
	gateway := &fakeGateway{listResult: remote}
	cache := &fakeCache{}
	store := newTestStore(gateway, cache)

	result, err := store.Refresh(context.Background())
	require.NoError(t, err)

	// 结果按创建时间倒序
	require.Len(t, result, 2)
	assert.Equal(t, int64(2), result[0].ID)
	assert.Equal(t, int64(1), result[1].ID)

	// 远端成功时结果同步镜像到本地缓存
	assert.Equal(t, 1, cache.persistCalls)
	assert.Equal(t, result, cache.snapshot)
}

func TestRefreshFallsBackToSnapshotWhenUnavailable(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cached := []model.Announcement{
		{ID: 10, Title: "缓存公告", CreatedAt: base},
	}
	gateway := &fakeGateway{unavailable: true}
	cache := &fakeCache{snapshot: cached}
	store := newTestStore(gateway, cache)

	result, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, result)

	// 回退读取不触发快照写入
	assert.Equal(t, 0, cache.persistCalls)
}

func TestRefreshDeduplicatesAndSorts(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{listResult: []model.Announcement{
		{ID: 1, Title: "旧公告", CreatedAt: base},
		{ID: 2, Title: "新公告", CreatedAt: base.Add(2 * time.Hour)},
		{ID: 1, Title: "重复ID", CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "同时公告", CreatedAt: base.Add(2 * time.Hour)},
	}}
	store := newTestStore(gateway, &fakeCache{})

	result, err := store.Refresh(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 3)
	// created_at相同的保持原有相对顺序（稳定排序）
	assert.Equal(t, int64(2), result[0].ID)
	assert.Equal(t, int64(3), result[1].ID)
	assert.Equal(t, int64(1), result[2].ID)
	assert.Equal(t, "旧公告", result[2].Title)

	// 排序不变式：创建时间非递增
	for i := 1; i < len(result); i++ {
		assert.False(t, result[i].CreatedAt.After(result[i-1].CreatedAt))
	}
}

func TestCreateRemoteSuccessDoesNotTouchCache(t *testing.T) {
	gateway := &fakeGateway{createID: 42}
	cache := &fakeCache{}
	store := newTestStore(gateway, cache)

	id, err := store.Create(context.Background(), model.Draft{Title: "新公告"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	// 远端成功时不做乐观本地合并，由调用方重新Refresh
	assert.Equal(t, 0, cache.persistCalls)
}

func TestFallbackCompleteness(t *testing.T) {
	// 远端对所有调用都不可用时，四个操作仅凭本地缓存依然全部成功，
	// 可见的公告集恰好反映本地变更序列
	gateway := &fakeGateway{unavailable: true}
	cache := &fakeCache{}
	store := newTestStore(gateway, cache)

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	ctx := context.Background()

	firstID, err := store.Create(ctx, model.Draft{Title: "第一条", Content: "内容一"})
	require.NoError(t, err)
	secondID, err := store.Create(ctx, model.Draft{Title: "第二条", Content: "内容二", IsPopup: true})
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)

	result, err := store.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, secondID, result[0].ID)
	assert.Equal(t, firstID, result[1].ID)

	// 本地更新：可变字段替换，ID和创建时间保持不变
	createdAt := result[1].CreatedAt
	require.NoError(t, store.Update(ctx, firstID, model.Draft{Title: "改过的第一条", Content: "新内容"}))

	result, err = store.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "改过的第一条", result[1].Title)
	assert.Equal(t, createdAt, result[1].CreatedAt)

	// 本地删除
	require.NoError(t, store.Delete(ctx, secondID))

	result, err = store.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, firstID, result[0].ID)
}

func TestCreateFallbackIDMonotonic(t *testing.T) {
	gateway := &fakeGateway{unavailable: true}
	store := newTestStore(gateway, &fakeCache{})

	// 时钟不前进时本地ID依然严格递增
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	ctx := context.Background()
	first, err := store.Create(ctx, model.Draft{Title: "a"})
	require.NoError(t, err)
	second, err := store.Create(ctx, model.Draft{Title: "b"})
	require.NoError(t, err)
	third, err := store.Create(ctx, model.Draft{Title: "c"})
	require.NoError(t, err)

	assert.Greater(t, second, first)
	assert.Greater(t, third, second)
}

func TestUpdateFallbackNotFound(t *testing.T) {
	gateway := &fakeGateway{unavailable: true}
	store := newTestStore(gateway, &fakeCache{})

	err := store.Update(context.Background(), 999, model.Draft{Title: "不存在"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	// 远端可用：目标不存在视为已删除
	gateway := &fakeGateway{deleteErr: ErrNotFound}
	store := newTestStore(gateway, &fakeCache{})

	ctx := context.Background()
	require.NoError(t, store.Delete(ctx, 7))
	require.NoError(t, store.Delete(ctx, 7))
	assert.Equal(t, 2, gateway.deleteCalls)

	// 回退通道：快照中没有目标同样算成功
	offline := &fakeGateway{unavailable: true}
	offlineStore := newTestStore(offline, &fakeCache{})
	require.NoError(t, offlineStore.Delete(ctx, 7))
	require.NoError(t, offlineStore.Delete(ctx, 7))
}

func TestRoundTrip(t *testing.T) {
	// Refresh → Create → Refresh后公告集恰好多出一条，新公告与提交的草稿逐字段一致
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{
		listResult: []model.Announcement{{ID: 1, Title: "已有公告", CreatedAt: base}},
		createID:   2,
	}
	cache := &fakeCache{}
	store := newTestStore(gateway, cache)

	ctx := context.Background()
	before, err := store.Refresh(ctx)
	require.NoError(t, err)

	draft := model.Draft{Title: "新公告", Content: "第一行\n第二行", IsPopup: true}
	id, err := store.Create(ctx, draft)
	require.NoError(t, err)

	// 模拟远端在Create之后的最新状态
	gateway.listResult = append([]model.Announcement{
		{ID: id, Title: draft.Title, Content: draft.Content, IsPopup: draft.IsPopup, CreatedAt: base.Add(time.Hour)},
	}, gateway.listResult...)

	after, err := store.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, draft.Title, after[0].Title)
	assert.Equal(t, draft.Content, after[0].Content)
	assert.Equal(t, draft.IsPopup, after[0].IsPopup)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("远端成功", func(t *testing.T) {
		gateway := &fakeGateway{authToken: "remote-token"}
		store := newTestStore(gateway, &fakeCache{})

		token, err := store.Authenticate(ctx, "口令")
		require.NoError(t, err)
		assert.Equal(t, "remote-token", token)
	})

	t.Run("口令错误不触发回退", func(t *testing.T) {
		gateway := &fakeGateway{authErr: ErrInvalidCredential}
		store := NewStore(gateway, &fakeCache{}, mustHash(t, "正确口令"), logger.NewLogger("error"))

		_, err := store.Authenticate(ctx, "正确口令")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("远端不可用且未配置回退口令", func(t *testing.T) {
		gateway := &fakeGateway{unavailable: true}
		store := newTestStore(gateway, &fakeCache{})

		_, err := store.Authenticate(ctx, "口令")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("远端不可用时本地比对口令", func(t *testing.T) {
		gateway := &fakeGateway{unavailable: true}
		store := NewStore(gateway, &fakeCache{}, mustHash(t, "正确口令"), logger.NewLogger("error"))

		token, err := store.Authenticate(ctx, "正确口令")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		_, err = store.Authenticate(ctx, "错误口令")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}

func mustHash(t *testing.T, secret string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}
