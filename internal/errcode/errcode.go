package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：可由用户修正的错误（校验失败、条目已不存在、图片超出大小限制）
// - 5xxx：系统错误
const (
	OK               = 0
	EntryNotFound    = 4004
	ImageTooLarge    = 4013
	ValidationFailed = 4022
	SystemError      = 5000
)
