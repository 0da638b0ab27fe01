package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	apperrors "dormhub/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tagNameOnce sync.Once

// RegisterValidatorTagName 校验错误使用json字段名；gin 的校验器是全局的，只注册一次
func RegisterValidatorTagName() {
	tagNameOnce.Do(registerTagName)
}

func registerTagName() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
}

// bindJSON 绑定请求体，失败时转换为字段校验错误
func bindJSON(c *gin.Context, req interface{}) *apperrors.ValidationError {
	if err := c.ShouldBindJSON(req); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) *apperrors.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &apperrors.ValidationError{}
		for _, fe := range verrs {
			out.Add(fe.Field(), fieldMessage(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		return apperrors.NewValidationError(field, fmt.Sprintf("The %s field must be a %s.", label(field), kindName(typeErr.Type.Kind())))
	}

	if errors.Is(err, io.EOF) {
		return apperrors.NewValidationError("body", "The request body is required.")
	}
	return apperrors.NewValidationError("body", "The request body is malformed.")
}

func fieldMessage(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "excludesall":
		return fmt.Sprintf("The %s field format is invalid.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64, reflect.Uint:
		return "number"
	default:
		return "string"
	}
}
