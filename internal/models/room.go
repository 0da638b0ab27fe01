package models

// Room 房间模型
type Room struct {
	Record
	RoomNumber  string   `json:"room_number" gorm:"unique;not null;size:50;index"`
	RoomType    string   `json:"room_type" gorm:"not null;size:20"`
	Price       *float64 `json:"price"`
	Floor       *string  `json:"floor" gorm:"size:50"`
	Description *string  `json:"description"`
	Status      string   `json:"status" gorm:"default:'vacant';size:20;index"`
}

// TableName 表名
func (r *Room) TableName() string {
	return "rooms"
}

// 房间类型常量
const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeSuite  = "suite"
)

// 房间状态常量，三者之间可任意切换
const (
	RoomStatusVacant      = "vacant"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// RoomTypes 合法房间类型
var RoomTypes = []string{RoomTypeSingle, RoomTypeDouble, RoomTypeSuite}

// RoomStatuses 合法房间状态
var RoomStatuses = []string{RoomStatusVacant, RoomStatusOccupied, RoomStatusMaintenance}

// IsValidRoomType 校验房间类型
func IsValidRoomType(t string) bool {
	return contains(RoomTypes, t)
}

// IsValidRoomStatus 校验房间状态
func IsValidRoomStatus(s string) bool {
	return contains(RoomStatuses, s)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// VacantRoom 空房列表项
type VacantRoom struct {
	ID         uint   `json:"id"`
	RoomNumber string `json:"room_number"`
}

// RoomStatistics 房间状态统计
type RoomStatistics struct {
	Occupied    int64 `json:"occupied"`
	Vacant      int64 `json:"vacant"`
	Maintenance int64 `json:"maintenance"`
}
