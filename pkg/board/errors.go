package board

import "errors"

var (
	// ErrUnavailable 远端记录服务不可用，涵盖网络故障、非2xx响应和响应格式错误
	ErrUnavailable = errors.New("远端服务不可用")

	// ErrNotFound 目标公告不存在
	ErrNotFound = errors.New("公告不存在")

	// ErrInvalidCredential 管理员口令错误，不会触发回退
	ErrInvalidCredential = errors.New("凭证无效")
)
