package main

import (
	"dormhub/internal/models"
	"dormhub/pkg/logger"
	"fmt"
	"os"

	"gorm.io/gorm"
)

// seedData 初始化演示数据，已存在的记录跳过
func seedData(db *gorm.DB) error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	if err := createDefaultAdmin(db); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}
	if err := createDemoRooms(db); err != nil {
		return fmt.Errorf("create demo rooms: %w", err)
	}
	if err := createDemoTenants(db); err != nil {
		return fmt.Errorf("create demo tenants: %w", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultAdmin 创建默认管理员
func createDefaultAdmin(db *gorm.DB) error {
	email := getenv("SEED_ADMIN_EMAIL", "admin@dormhub.local")

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("Default admin exists, skipping")
		return nil
	}

	user := &models.User{
		Name:        "Administrator",
		PhoneNumber: "0000000000",
		Email:       email,
	}
	if err := user.SetPassword(getenv("SEED_ADMIN_PASSWORD", "password123")); err != nil {
		return err
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	logger.GetLogger().Infof("Default admin created: %s", email)
	return nil
}

func createDemoRooms(db *gorm.DB) error {
	price := 4500.0
	rooms := []models.Room{
		{RoomNumber: "101", RoomType: models.RoomTypeSingle, Price: &price, Status: models.RoomStatusOccupied},
		{RoomNumber: "102", RoomType: models.RoomTypeDouble, Price: &price, Status: models.RoomStatusOccupied},
		{RoomNumber: "103", RoomType: models.RoomTypeSuite, Price: &price, Status: models.RoomStatusOccupied},
		{RoomNumber: "201", RoomType: models.RoomTypeSingle, Price: &price, Status: models.RoomStatusVacant},
		{RoomNumber: "202", RoomType: models.RoomTypeDouble, Price: &price, Status: models.RoomStatusMaintenance},
	}

	for i := range rooms {
		var count int64
		db.Model(&models.Room{}).Where("room_number = ?", rooms[i].RoomNumber).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&rooms[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func createDemoTenants(db *gorm.DB) error {
	tenants := []models.Tenant{
		{Name: "John Doe", EmailAddress: "john.doe@example.com", ContactNumber: "09170000101", Room: "101"},
		{Name: "Jane Smith", EmailAddress: "jane.smith@example.com", ContactNumber: "09170000102", Room: "102"},
		{Name: "Mike Johnson", EmailAddress: "mike.johnson@example.com", ContactNumber: "09170000103", Room: "103"},
	}

	for i := range tenants {
		var count int64
		db.Model(&models.Tenant{}).Where("email_address = ?", tenants[i].EmailAddress).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&tenants[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
