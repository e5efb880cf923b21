// Package types 提供各服务共享的类型和错误哨兵
// 独立成包以避免 service 子包之间的循环导入
package types

import "errors"

// 错误分类哨兵，handler 层据此映射 HTTP 状态码
var (
	// ErrInvalidInput 缺少必填字段或格式不合法 (400)
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized 未认证或凭证无效 (401)
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden 已认证但无权限，如管理员手机号不匹配 (403)
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound 资源不存在或不属于调用者 (404)
	ErrNotFound = errors.New("not found")
	// ErrRateLimited 触发限流 (429)
	ErrRateLimited = errors.New("rate limited")
	// ErrUpstream 上游依赖失败，LLM 或短信服务 (502)
	ErrUpstream = errors.New("upstream failure")
)
