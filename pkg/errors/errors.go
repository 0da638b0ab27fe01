package errors

import (
	stderrors "errors"
	"sort"
	"strings"
)

// ========== 错误码常量定义 ==========

// 成功码
const (
	CodeSuccess = 200
	CodeCreated = 201
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam  = 400
	CodeUnauthorized  = 401
	CodeForbidden     = 403
	CodeNotFound      = 404
	CodeUnprocessable = 422
	CodeServerError   = 500
)

// ========== 业务错误 ==========

var (
	ErrNotFound     = stderrors.New("resource not found")
	ErrDuplicate    = stderrors.New("duplicate value")
	ErrUnauthorized = stderrors.New("unauthenticated")
)

// ValidationError 字段校验错误，按字段聚合消息
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError 创建单字段校验错误
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{Fields: map[string][]string{}}
	v.Add(field, message)
	return v
}

// Add 追加字段错误
func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = map[string][]string{}
	}
	v.Fields[field] = append(v.Fields[field], message)
}

// Empty 是否没有任何字段错误
func (v *ValidationError) Empty() bool {
	return len(v.Fields) == 0
}

// Error 返回首个字段的第一条消息，其余字段计数附加在后
func (v *ValidationError) Error() string {
	if v.Empty() {
		return "validation failed"
	}
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msg := v.Fields[keys[0]][0]
	if len(keys) > 1 {
		msg += " (and " + strings.Join(keys[1:], ", ") + ")"
	}
	return msg
}

// Is 令 errors.Is(err, ErrDuplicate) 对唯一性校验失败成立
func (v *ValidationError) Is(target error) bool {
	if target != ErrDuplicate {
		return false
	}
	for _, msgs := range v.Fields {
		for _, m := range msgs {
			if strings.Contains(m, TakenSuffix) {
				return true
			}
		}
	}
	return false
}

// TakenSuffix 唯一性冲突消息的固定后缀
const TakenSuffix = "has already been taken."

// Taken 构造唯一性冲突的校验错误
func Taken(field, label string) *ValidationError {
	return NewValidationError(field, "The "+label+" "+TakenSuffix)
}
