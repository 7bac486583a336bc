package localcache

import "sync"

// Session 会话级弹窗关闭记录，实现board.Session。
// 只存活在内存中，会话结束即丢弃，与跨会话持久化的公告快照属于不同的存储范围。
type Session struct {
	mu        sync.Mutex
	dismissed map[int64]struct{}
}

// NewSession 创建一个空的会话关闭记录
func NewSession() *Session {
	return &Session{dismissed: make(map[int64]struct{})}
}

// Dismissed 该公告在本会话中是否已被关闭
func (s *Session) Dismissed(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.dismissed[id]
	return ok
}

// RecordDismissal 记录一次关闭
func (s *Session) RecordDismissal(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[id] = struct{}{}
}
