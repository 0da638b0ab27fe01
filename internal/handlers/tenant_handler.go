package handlers

import (
	"dormhub/internal/services"
	"dormhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	service *services.TenantService
}

func NewTenantHandler(service *services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenantRequest 新增住户请求
type CreateTenantRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	EmailAddress  string `json:"email_address" binding:"required,email"`
	ContactNumber string `json:"contact_number" binding:"required,max=20"`
	Room          string `json:"room" binding:"required,max=255"`
}

// List 获取住户列表，直接返回数组
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.service.List()
	if err != nil {
		response.FromError(c, err, "Tenant not found")
		return
	}
	response.Success(c, tenants)
}

// Create 新增住户
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if verr := bindJSON(c, &req); verr != nil {
		response.Validation(c, verr)
		return
	}

	tenant, err := h.service.Create(services.TenantInput{
		Name:          req.Name,
		EmailAddress:  req.EmailAddress,
		ContactNumber: req.ContactNumber,
		Room:          req.Room,
	})
	if err != nil {
		response.FromError(c, err, "Tenant not found")
		return
	}
	response.Created(c, gin.H{"tenant": tenant})
}
