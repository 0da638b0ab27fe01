package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User 管理员账号
type User struct {
	Record
	Name           string  `json:"name" gorm:"not null;size:255"`
	PhoneNumber    string  `json:"phone_number" gorm:"not null;size:15"`
	Email          string  `json:"email" gorm:"unique;not null;size:255;index"`
	PasswordHash   string  `json:"-" gorm:"not null;size:255"`
	ProfilePicture *string `json:"profile_picture" gorm:"size:255"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// SetPassword 设置密码
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
