package models

// Tenant 住户模型；Room 保存的是房间号而不是房间ID
type Tenant struct {
	Record
	Name          string `json:"name" gorm:"not null;size:255"`
	EmailAddress  string `json:"email_address" gorm:"unique;not null;size:255;index"`
	ContactNumber string `json:"contact_number" gorm:"not null;size:20"`
	Room          string `json:"room" gorm:"not null;size:255;index"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}
