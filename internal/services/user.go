package services

import (
	"errors"
	"strings"

	"dormhub/internal/models"
	apperrors "dormhub/pkg/errors"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

// RegisterInput 注册字段
type RegisterInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Password    string
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register 注册用户，邮箱重复时返回字段校验错误
func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Taken("email", "email")
	}

	user := &models.User{
		Name:        strings.TrimSpace(in.Name),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Email:       email,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Taken("email", "email")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate 校验邮箱与密码，失败统一返回 ErrUnauthorized
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, apperrors.ErrUnauthorized
	}
	return &user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// SetProfilePicture 更新头像路径，写入成功后才修改 user
func (s *UserService) SetProfilePicture(user *models.User, path string) error {
	err := s.db.Model(&models.User{}).Where("id = ?", user.ID).Update("profile_picture", path).Error
	if err != nil {
		return err
	}
	user.ProfilePicture = &path
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
