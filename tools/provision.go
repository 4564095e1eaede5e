package main

import (
	"fmt"
	"os"
	"strings"

	"courier-admin/constants"
	"courier-admin/database"
	"courier-admin/database/seeders"
	adminModel "courier-admin/models/admin"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/provision.go create-admin <username>  - Provision an admin account")
		fmt.Println("  go run tools/provision.go seed-pincodes            - Seed the default serviceable pincodes")
		return
	}

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file loaded:", err)
	}

	db, err := database.InitDB()
	if err != nil {
		fmt.Printf("❌ Failed to connect to the database: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "create-admin":
		if len(os.Args) < 3 {
			fmt.Println("Please provide a username")
			fmt.Println("Example: go run tools/provision.go create-admin ops")
			return
		}
		username := strings.TrimSpace(os.Args[2])

		var count int64
		db.Model(&adminModel.Admin{}).Where("username = ?", username).Count(&count)
		if count > 0 {
			fmt.Printf("❌ Admin %q already exists\n", username)
			os.Exit(1)
		}

		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			fmt.Printf("❌ Failed to read password: %v\n", err)
			os.Exit(1)
		}
		password := strings.TrimSpace(string(raw))
		if len(password) < 8 {
			fmt.Println("❌ Password must be at least 8 characters")
			os.Exit(1)
		}

		account := adminModel.Admin{
			Username:    username,
			Permissions: strings.Join(constants.DefaultAdminPermissions, ","),
		}
		if err := account.SetPassword(password); err != nil {
			fmt.Printf("❌ Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		if err := db.Create(&account).Error; err != nil {
			fmt.Printf("❌ Failed to create admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Admin %q provisioned with permissions: %s\n", username, account.Permissions)

	case "seed-pincodes":
		fmt.Println("🚀 Seeding default serviceable pincodes...")
		if err := seeders.SeedPincodes(db); err != nil {
			fmt.Printf("❌ Seeding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Seeding completed successfully!")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: create-admin, seed-pincodes")
	}
}
