package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError 字段校验失败（422，或头像上传的400）
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// Field 返回指定字段的第一条消息
func (e *ValidationError) Field(name string) string {
	if msgs := e.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// AuthError 401：凭证错误或token缺失/过期/已吊销，调用方应回到登录
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "unauthenticated: " + e.Message
}

// DuplicateError 唯一性冲突（房间号或住户邮箱）
type DuplicateError struct {
	Field   string
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// NotFoundError 404：对象不存在或已删除
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Message
}

// NetworkError 未得到可用响应：连接失败、超时、熔断或5xx
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: server returned %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError 其它未归类的HTTP错误
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// IsAuth 是否需要重新登录
func IsAuth(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

// IsNotFound 是否为404
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsDuplicate 是否为唯一性冲突
func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}

// IsNetwork 是否为网络错误
func IsNetwork(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

const takenSuffix = "has already been taken."

// validationOrDuplicate 422 中包含唯一性冲突时返回 DuplicateError
func validationOrDuplicate(message string, fields map[string][]string) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, m := range fields[k] {
			if strings.Contains(m, takenSuffix) {
				return &DuplicateError{Field: k, Message: m}
			}
		}
	}
	return &ValidationError{Message: message, Fields: fields}
}
