package services

import (
	"errors"
	"fmt"
	"strings"

	"dormhub/internal/models"
	apperrors "dormhub/pkg/errors"

	"gorm.io/gorm"
)

// RoomService 房间仓储，服务端唯一可信来源
type RoomService struct {
	db *gorm.DB
}

// RoomInput 创建/更新房间的字段，可选字段为空指针
type RoomInput struct {
	RoomNumber  string
	RoomType    string
	Price       *float64
	Floor       *string
	Description *string
	Status      string
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

// Validate 校验房间字段
func (in *RoomInput) Validate() *apperrors.ValidationError {
	v := &apperrors.ValidationError{}

	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	if in.RoomNumber == "" {
		v.Add("room_number", "The room number field is required.")
	} else if strings.Contains(in.RoomNumber, "/") {
		// 房间号会出现在 /rooms/{room_number}/status 路径中
		v.Add("room_number", "The room number field format is invalid.")
	}
	if in.RoomType == "" {
		v.Add("room_type", "The room type field is required.")
	} else if !models.IsValidRoomType(in.RoomType) {
		v.Add("room_type", "The selected room type is invalid.")
	}
	if in.Status != "" && !models.IsValidRoomStatus(in.Status) {
		v.Add("status", "The selected status is invalid.")
	}
	if in.Price != nil && *in.Price < 0 {
		v.Add("price", "The price field must be at least 0.")
	}

	if v.Empty() {
		return nil
	}
	return v
}

// List 获取全部房间，调用方不应依赖顺序
func (s *RoomService) List() ([]models.Room, error) {
	rooms := []models.Room{}
	err := s.db.Order("id").Find(&rooms).Error
	return rooms, err
}

// GetByID 根据ID获取房间
func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

// GetByRoomNumber 根据房间号获取房间
func (s *RoomService) GetByRoomNumber(roomNumber string) (*models.Room, error) {
	var room models.Room
	if err := s.db.Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

// Create 创建房间，未指定状态时为空房
func (s *RoomService) Create(in RoomInput) (*models.Room, error) {
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}
	if err := s.checkRoomNumber(in.RoomNumber, 0); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.RoomStatusVacant
	}

	room := &models.Room{
		RoomNumber:  in.RoomNumber,
		RoomType:    in.RoomType,
		Price:       in.Price,
		Floor:       in.Floor,
		Description: in.Description,
		Status:      status,
	}
	if err := s.db.Create(room).Error; err != nil {
		return nil, duplicateRoom(err)
	}
	return room, nil
}

// Update 更新房间，房间号只与其它房间比较唯一性
func (s *RoomService) Update(id uint, in RoomInput) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}
	if err := s.checkRoomNumber(in.RoomNumber, id); err != nil {
		return nil, err
	}

	room.RoomNumber = in.RoomNumber
	room.RoomType = in.RoomType
	room.Price = in.Price
	room.Floor = in.Floor
	room.Description = in.Description
	if in.Status != "" {
		room.Status = in.Status
	}

	if err := s.db.Save(room).Error; err != nil {
		return nil, duplicateRoom(err)
	}
	return room, nil
}

// Delete 删除房间，重复删除返回 ErrNotFound
func (s *RoomService) Delete(id uint) error {
	result := s.db.Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetStatus 按房间号更新状态
func (s *RoomService) SetStatus(roomNumber, status string) (*models.Room, error) {
	if !models.IsValidRoomStatus(status) {
		return nil, apperrors.NewValidationError("status", "The selected status is invalid.")
	}
	room, err := s.GetByRoomNumber(roomNumber)
	if err != nil {
		return nil, err
	}
	room.Status = status
	if err := s.db.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// Vacant 获取空房列表（仅ID与房间号）
func (s *RoomService) Vacant() ([]models.VacantRoom, error) {
	rooms := []models.VacantRoom{}
	err := s.db.Model(&models.Room{}).
		Select("id", "room_number").
		Where("status = ?", models.RoomStatusVacant).
		Order("id").
		Scan(&rooms).Error
	return rooms, err
}

// Statistics 统计各状态房间数量
func (s *RoomService) Statistics() (*models.RoomStatistics, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.Model(&models.Room{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &models.RoomStatistics{}
	for _, row := range rows {
		switch row.Status {
		case models.RoomStatusOccupied:
			stats.Occupied = row.Count
		case models.RoomStatusVacant:
			stats.Vacant = row.Count
		case models.RoomStatusMaintenance:
			stats.Maintenance = row.Count
		}
	}
	return stats, nil
}

// checkRoomNumber 检查房间号是否被其它房间占用，exceptID 为 0 表示不排除
func (s *RoomService) checkRoomNumber(roomNumber string, exceptID uint) error {
	var count int64
	query := s.db.Model(&models.Room{}).Where("room_number = ?", roomNumber)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Taken("room_number", "room number")
	}
	return nil
}

// duplicateRoom 并发写入时由唯一索引兜底
func duplicateRoom(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Taken("room_number", "room number")
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", apperrors.ErrNotFound, err)
	}
	return err
}
