package constants

// 通用错误消息
const (
	// 认证相关错误
	ErrUnauthorized      = "未授权，请先登录"
	ErrInvalidToken      = "无效的Token"
	ErrPasswordIncorrect = "密码错误"

	// 公告相关错误
	ErrAnnouncementNotFound = "公告不存在"
	ErrTitleEmpty           = "公告标题不能为空"

	// 参数相关错误
	ErrInvalidParams = "参数错误"

	// 系统错误
	ErrInternalServer = "服务器内部错误"
)

// 成功消息
const (
	SuccessLogin  = "登录成功"
	SuccessCreate = "创建成功"
	SuccessUpdate = "更新成功"
	SuccessDelete = "删除成功"
)
