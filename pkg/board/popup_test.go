package board

import (
	"testing"
	"time"

	"noticeboard/internal/model"
	"noticeboard/pkg/localcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPopupSelectionDeterminism(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	// 公告集保持Refresh返回的顺序：创建时间倒序
	announcements := []model.Announcement{
		{ID: 1, Title: "新弹窗", IsPopup: true, CreatedAt: t2},
		{ID: 2, Title: "旧弹窗", IsPopup: true, CreatedAt: t1},
	}
	session := localcache.NewSession()

	popup := NextPopup(announcements, session)
	require.NotNil(t, popup)
	assert.Equal(t, int64(1), popup.ID)

	session.RecordDismissal(popup.ID)
	popup = NextPopup(announcements, session)
	require.NotNil(t, popup)
	assert.Equal(t, int64(2), popup.ID)

	session.RecordDismissal(popup.ID)
	assert.Nil(t, NextPopup(announcements, session))
}

func TestNextPopupSkipsNonPopupRecords(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	announcements := []model.Announcement{
		{ID: 1, Title: "普通公告", IsPopup: false, CreatedAt: base.Add(time.Hour)},
		{ID: 2, Title: "弹窗公告", IsPopup: true, CreatedAt: base},
	}

	popup := NextPopup(announcements, localcache.NewSession())
	require.NotNil(t, popup)
	assert.Equal(t, int64(2), popup.ID)
}

func TestNextPopupEmptyWhenNoneEligible(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	announcements := []model.Announcement{
		{ID: 1, Title: "普通公告", CreatedAt: base},
	}
	assert.Nil(t, NextPopup(announcements, localcache.NewSession()))
	assert.Nil(t, NextPopup(nil, localcache.NewSession()))
}

func TestNextPopupAtMostOncePerSession(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	announcements := []model.Announcement{
		{ID: 5, Title: "弹窗", IsPopup: true, CreatedAt: base},
	}
	session := localcache.NewSession()

	popup := NextPopup(announcements, session)
	require.NotNil(t, popup)
	session.RecordDismissal(popup.ID)

	// 再次Refresh后记录依旧是弹窗，甚至内容变化，本会话内也不再展示
	announcements[0].Title = "改过的弹窗"
	assert.Nil(t, NextPopup(announcements, session))

	// 新会话重新开始计算
	popup = NextPopup(announcements, localcache.NewSession())
	require.NotNil(t, popup)
	assert.Equal(t, int64(5), popup.ID)
}
