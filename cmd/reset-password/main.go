package main

import (
	"flag"
	"log"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator recovery tool: resets a user's password directly in the database.
func main() {
	username := flag.String("user", "admin", "username to reset")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	var user model.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *username, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"password":      string(hashedPassword),
		"token_version": "", // invalidate open sessions
	}).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *username)
}
