// Command seed-admin creates the admin account, or promotes an existing user
// with the same email.
package main

import (
	"context"
	"log"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/config"
	"github.com/georgemunganga/supermart-backend/internal/database"
	"github.com/georgemunganga/supermart-backend/internal/modules/user"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	handle := database.NewHandle(cfg.DatabaseURL)
	db, err := handle.Connect(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer handle.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database: %v", err)
	}

	admin, changed, err := user.NewService(user.NewPostgresRepository(db)).EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("seed-admin: %v", err)
	}
	if !changed {
		log.Printf("seed-admin: %s is already an admin", admin.Email)
		return
	}
	log.Printf("seed-admin: admin ready: %s", admin.Email)
}
