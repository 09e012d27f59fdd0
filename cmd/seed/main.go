package main

import (
	"log"
	"os"

	"eventchat-be/internal/model"
	"eventchat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding default admin account...")

	var existing model.User
	if err := db.Where("username = ?", "admin").First(&existing).Error; err == nil {
		color.Yellow("Admin account already exists, skipping...")
		return
	}

	password := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if password == "" {
		password = "admin123"
		color.Yellow("ADMIN_DEFAULT_PASSWORD not set, using the development default. Change it before going live.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash password:", err)
	}

	admin := model.User{
		Username:     "admin",
		Email:        os.Getenv("ADMIN_EMAIL"),
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         "admin",
		Active:       true,
	}
	if admin.Email == "" {
		admin.Email = "admin@example.com"
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Error: Failed to create admin account:", err)
	}

	color.Green("Created admin account: %s (%s)", admin.Username, admin.Email)
	color.Cyan("Seeding completed!")
}
