package services

import (
	"errors"
	"strings"

	"dormhub/internal/models"
	apperrors "dormhub/pkg/errors"

	"gorm.io/gorm"
)

// TenantService 住户名册
type TenantService struct {
	db *gorm.DB
}

// TenantInput 新增住户字段
type TenantInput struct {
	Name          string
	EmailAddress  string
	ContactNumber string
	Room          string
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// List 获取全部住户
func (s *TenantService) List() ([]models.Tenant, error) {
	tenants := []models.Tenant{}
	err := s.db.Order("id").Find(&tenants).Error
	return tenants, err
}

// Create 新增住户。房间状态不在此处修改，由调用方另行更新
func (s *TenantService) Create(in TenantInput) (*models.Tenant, error) {
	email := strings.ToLower(strings.TrimSpace(in.EmailAddress))

	var count int64
	if err := s.db.Model(&models.Tenant{}).Where("email_address = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Taken("email_address", "email address")
	}

	tenant := &models.Tenant{
		Name:          strings.TrimSpace(in.Name),
		EmailAddress:  email,
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Room:          strings.TrimSpace(in.Room),
	}
	if err := s.db.Create(tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Taken("email_address", "email address")
		}
		return nil, err
	}
	return tenant, nil
}
