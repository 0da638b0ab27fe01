package client

import (
	"math"
	"time"
)

// Session 显式会话上下文，每个需认证的调用都要传入
type Session struct {
	Token string
}

// Authenticated 是否持有token
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// User 用户
type User struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	PhoneNumber    string    `json:"phone_number"`
	Email          string    `json:"email"`
	ProfilePicture *string   `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile 个人资料
type Profile struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number"`
	ProfilePicture *string `json:"profile_picture"`
}

// Room 房间
type Room struct {
	ID          uint64    `json:"id"`
	RoomNumber  string    `json:"room_number"`
	RoomType    string    `json:"room_type"`
	Price       *float64  `json:"price"`
	Floor       *string   `json:"floor"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Fields 当前字段值，用于编辑表单预填
func (r Room) Fields() RoomFields {
	return RoomFields{
		RoomNumber:  r.RoomNumber,
		RoomType:    r.RoomType,
		Price:       r.Price,
		Floor:       r.Floor,
		Description: r.Description,
		Status:      r.Status,
	}
}

// RoomFields 房间表单字段，可选成员为指针
type RoomFields struct {
	RoomNumber  string   `json:"room_number"`
	RoomType    string   `json:"room_type"`
	Price       *float64 `json:"price,omitempty"`
	Floor       *string  `json:"floor,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// VacantRoom 空房
type VacantRoom struct {
	ID         uint64 `json:"id"`
	RoomNumber string `json:"room_number"`
}

// 房间状态
const (
	StatusVacant      = "vacant"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

// Statistics 房间状态统计
type Statistics struct {
	Occupied    int64 `json:"occupied"`
	Vacant      int64 `json:"vacant"`
	Maintenance int64 `json:"maintenance"`
}

// Total 房间总数
func (s Statistics) Total() int64 {
	return s.Occupied + s.Vacant + s.Maintenance
}

// Percentages 各状态占比（0-100），总数为0时全部为0
type Percentages struct {
	Occupied    float64
	Vacant      float64
	Maintenance float64
}

// Percentages 计算各状态占比
func (s Statistics) Percentages() Percentages {
	total := s.Total()
	if total == 0 {
		return Percentages{}
	}
	t := float64(total)
	return Percentages{
		Occupied:    float64(s.Occupied) / t * 100,
		Vacant:      float64(s.Vacant) / t * 100,
		Maintenance: float64(s.Maintenance) / t * 100,
	}
}

// Rounded 保留一位小数
func (p Percentages) Rounded() Percentages {
	r := func(v float64) float64 { return math.Round(v*10) / 10 }
	return Percentages{Occupied: r(p.Occupied), Vacant: r(p.Vacant), Maintenance: r(p.Maintenance)}
}

// Tenant 住户
type Tenant struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	EmailAddress  string    `json:"email_address"`
	ContactNumber string    `json:"contact_number"`
	Room          string    `json:"room"`
	CreatedAt     time.Time `json:"created_at"`
}

// DisplayDate 入住日期 MM/DD/YYYY
func (t Tenant) DisplayDate() string {
	if t.CreatedAt.IsZero() {
		return ""
	}
	return t.CreatedAt.Local().Format("01/02/2006")
}

// NewTenant 新增住户字段
type NewTenant struct {
	Name          string `json:"name"`
	Room          string `json:"room"`
	EmailAddress  string `json:"email_address"`
	ContactNumber string `json:"contact_number"`
}

// Registration 注册字段
type Registration struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}
