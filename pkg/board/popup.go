package board

import "noticeboard/internal/model"

// NextPopup 从当前公告集中选出至多一条待展示的弹窗公告。
// 公告集保持Refresh返回的顺序（创建时间倒序），
// 返回其中第一条标记为弹窗且本会话尚未关闭的公告，没有符合条件的返回nil。
// 关闭记录只按ID判断，同一会话内已关闭的公告即使内容或弹窗标记变化也不再展示。
func NextPopup(announcements []model.Announcement, session Session) *model.Announcement {
	for i := range announcements {
		if !announcements[i].IsPopup {
			continue
		}
		if session.Dismissed(announcements[i].ID) {
			continue
		}
		popup := announcements[i]
		return &popup
	}
	return nil
}
