package handlers

import (
	"strconv"

	"dormhub/internal/models"
	"dormhub/internal/services"
	"dormhub/pkg/response"

	"github.com/gin-gonic/gin"
)

const roomNotFound = "Room not found"

type RoomHandler struct {
	service *services.RoomService
}

func NewRoomHandler(service *services.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// RoomRequest 创建/更新房间请求
type RoomRequest struct {
	RoomNumber  string   `json:"room_number" binding:"required,max=50,excludesall=/"`
	RoomType    string   `json:"room_type" binding:"required,oneof=single double suite"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Floor       *string  `json:"floor" binding:"omitempty,max=50"`
	Description *string  `json:"description"`
	Status      string   `json:"status" binding:"omitempty,oneof=vacant occupied maintenance"`
}

// RoomStatusRequest 更新房间状态请求，缺省为 occupied
type RoomStatusRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=vacant occupied maintenance"`
}

// RoomBody 单个房间返回
type RoomBody struct {
	Message string       `json:"message,omitempty"`
	Room    *models.Room `json:"room"`
}

func (r *RoomRequest) input() services.RoomInput {
	return services.RoomInput{
		RoomNumber:  r.RoomNumber,
		RoomType:    r.RoomType,
		Price:       r.Price,
		Floor:       r.Floor,
		Description: r.Description,
		Status:      r.Status,
	}
}

// List 获取全部房间
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.service.List()
	if err != nil {
		response.FromError(c, err, roomNotFound)
		return
	}
	response.Success(c, gin.H{"rooms": rooms})
}

// Create 新增房间
func (h *RoomHandler) Create(c *gin.Context) {
	var req RoomRequest
	if verr := bindJSON(c, &req); verr != nil {
		response.Validation(c, verr)
		return
	}

	room, err := h.service.Create(req.input())
	if err != nil {
		response.FromError(c, err, roomNotFound)
		return
	}
	response.Created(c, RoomBody{Message: "Room added successfully", Room: room})
}

// Edit 获取房间用于编辑表单预填
func (h *RoomHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, roomNotFound)
		return
	}

	room, err := h.service.GetByID(id)
	if err != nil {
		response.FromError(c, err, roomNotFound)
		return
	}
	response.Success(c, RoomBody{Room: room})
}

// Update 更新房间
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, roomNotFound)
		return
	}

	var req RoomRequest
	if verr := bindJSON(c, &req); verr != nil {
		response.Validation(c, verr)
		return
	}

	room, err := h.service.Update(id, req.input())
	if err != nil {
		response.FromError(c, err, roomNotFound)
		return
	}
	response.Success(c, RoomBody{Message: "Room updated successfully", Room: room})
}

// Delete 删除房间
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, roomNotFound)
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.FromError(c, err, roomNotFound)
		return
	}
	response.SuccessWithMessage(c, "Room deleted successfully")
}

// UpdateStatus 按房间号更新状态
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	var req RoomStatusRequest
	if c.Request.ContentLength != 0 {
		if verr := bindJSON(c, &req); verr != nil {
			response.Validation(c, verr)
			return
		}
	}
	if req.Status == "" {
		req.Status = models.RoomStatusOccupied
	}

	room, err := h.service.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err, roomNotFound)
		return
	}
	response.Success(c, RoomBody{Message: "Room status updated successfully", Room: room})
}

// Vacant 获取空房列表
func (h *RoomHandler) Vacant(c *gin.Context) {
	rooms, err := h.service.Vacant()
	if err != nil {
		response.FromError(c, err, roomNotFound)
		return
	}
	response.Success(c, gin.H{"rooms": rooms})
}

// Statistics 房间状态统计
func (h *RoomHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics()
	if err != nil {
		response.FromError(c, err, roomNotFound)
		return
	}
	response.Success(c, stats)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
