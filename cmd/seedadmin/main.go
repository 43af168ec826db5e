// cmd/seedadmin/main.go — creates or updates the platform super admin.
// Usage: SUPER_ADMIN_EMAIL=... SUPER_ADMIN_PASSWORD=... go run cmd/seedadmin/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"posadmin/internal/config"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	email := strings.ToLower(strings.TrimSpace(cfg.SuperAdminEmail))
	password := cfg.SuperAdminPassword
	if email == "" || password == "" {
		log.Fatal("SUPER_ADMIN_EMAIL and SUPER_ADMIN_PASSWORD must be set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO users (email, password_hash, role, first_name, last_name, active)
		VALUES (?, ?, 'super_admin', 'Super', 'Admin', true)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    role = 'super_admin',
		    active = true
	`, email, string(hash))

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("super admin '%s' created/updated\n", email)
}
