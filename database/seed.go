package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"theatre_service/config"
	"theatre_service/model"
)

// SeedData creates the initial elevated user so a fresh deployment has a
// way to manage the catalog. Idempotent.
func SeedData(db *gorm.DB) {
	email := config.Config("ADMIN_EMAIL")
	password := config.Config("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash admin password:", err)
		return
	}

	admin := model.User{
		Email:    email,
		Password: string(bytes),
		IsStaff:  true,
	}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
	}
}
