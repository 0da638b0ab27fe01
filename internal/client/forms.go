package client

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateLogin 登录表单本地校验
func ValidateLogin(email, password string) *ValidationError {
	v := &ValidationError{Message: "Validation failed", Fields: map[string][]string{}}
	checkEmail(v, "email", email)
	if password == "" {
		v.Fields["password"] = append(v.Fields["password"], "Password is required")
	}
	return v.orNil()
}

// ValidateRegistration 注册表单本地校验，规则与服务端一致，手机号要求10位数字
func ValidateRegistration(reg Registration) *ValidationError {
	v := &ValidationError{Message: "Validation failed", Fields: map[string][]string{}}

	name := strings.TrimSpace(reg.Name)
	switch {
	case name == "":
		v.Fields["name"] = append(v.Fields["name"], "Name is required")
	case len([]rune(name)) < 2:
		v.Fields["name"] = append(v.Fields["name"], "Name must be at least 2 characters")
	}

	switch {
	case reg.PhoneNumber == "":
		v.Fields["phone_number"] = append(v.Fields["phone_number"], "Phone number is required")
	case validate.Var(reg.PhoneNumber, "len=10,numeric") != nil:
		v.Fields["phone_number"] = append(v.Fields["phone_number"], "Phone number must be a 10-digit number")
	}

	checkEmail(v, "email", reg.Email)

	switch {
	case reg.Password == "":
		v.Fields["password"] = append(v.Fields["password"], "Password is required")
	case len(reg.Password) < 8:
		v.Fields["password"] = append(v.Fields["password"], "Password must be at least 8 characters")
	}

	return v.orNil()
}

// ValidateNewTenant 新增住户本地校验
func ValidateNewTenant(t NewTenant) *ValidationError {
	v := &ValidationError{Message: "Validation failed", Fields: map[string][]string{}}
	if strings.TrimSpace(t.Name) == "" {
		v.Fields["name"] = append(v.Fields["name"], "Name is required")
	}
	if strings.TrimSpace(t.Room) == "" {
		v.Fields["room"] = append(v.Fields["room"], "Room is required")
	}
	checkEmail(v, "email_address", t.EmailAddress)
	if strings.TrimSpace(t.ContactNumber) == "" {
		v.Fields["contact_number"] = append(v.Fields["contact_number"], "Contact number is required")
	}
	return v.orNil()
}

func checkEmail(v *ValidationError, field, email string) {
	switch {
	case email == "":
		v.Fields[field] = append(v.Fields[field], "Email is required")
	case validate.Var(email, "email") != nil:
		v.Fields[field] = append(v.Fields[field], "Enter a valid email address")
	}
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
