// Command admin manages the admin role on user accounts.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"inkreel/internal/config"
	"inkreel/internal/database"
	"inkreel/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  admin promote <email>     - Grant the admin role")
		fmt.Println("  admin demote <email>      - Revoke the admin role")
		fmt.Println("  admin list                - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "promote":
		requireEmailArg()
		setAdmin(db, os.Args[2], true)
	case "demote":
		requireEmailArg()
		setAdmin(db, os.Args[2], false)
	case "list":
		listAdmins(db)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func requireEmailArg() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: admin <promote|demote> <email>")
		os.Exit(1)
	}
}

func setAdmin(db *gorm.DB, email string, isAdmin bool) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("No user with email %s\n", email)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsAdmin == isAdmin {
		fmt.Printf("%s (ID: %d) already has is_admin=%v\n", user.Name, user.ID, isAdmin)
		return
	}

	user.IsAdmin = isAdmin
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	fmt.Printf("Updated %s (ID: %d): is_admin=%v\n", user.Name, user.ID, isAdmin)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found")
		return
	}
	for _, admin := range admins {
		fmt.Printf("ID: %d | Name: %s | Email: %s\n", admin.ID, admin.Name, admin.Email)
	}
}
