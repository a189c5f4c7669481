package util

const (
	// RequestIDKey gin.Context 中保存请求 ID 的键
	RequestIDKey = "request_id"
	// RequestIDHeader 请求 ID 的 HTTP 头
	RequestIDHeader = "X-Request-ID"
)
