// seed inserts development accounts for local testing. Idempotent: users that
// already exist are left untouched.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/victorexecutive/ops-service/internal/config"
	"github.com/victorexecutive/ops-service/internal/database"
	"github.com/victorexecutive/ops-service/internal/domain"
	"github.com/victorexecutive/ops-service/internal/repository/postgres"
	"github.com/victorexecutive/ops-service/pkg/hash"
)

type seedUser struct {
	email    string
	password string
	fullName string
	role     domain.Role
}

var seedUsers = []seedUser{
	{"admin@victorexecutive.com", "VictorAdmin!2025", "Victor Platform Admin", domain.RoleVictorAdmin},
	{"ops@victorexecutive.com", "Operator!2025", "Operator Control", domain.RoleOperatorAdmin},
	{"handler@victorexecutive.com", "Handler!2025", "Ground Handling", domain.RoleHandler},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := postgres.NewUserRepository(db)

	for _, su := range seedUsers {
		existing, err := userRepo.GetByEmail(ctx, su.email)
		if err != nil {
			log.Fatalf("Failed to look up %s: %v", su.email, err)
		}
		if existing != nil {
			log.Printf("%s already exists, skipping", su.email)
			continue
		}

		passwordHash, err := hash.HashPasswordWithCost(su.password, cfg.Auth.BcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.email, err)
		}

		now := time.Now()
		user := &domain.User{
			ID:           uuid.New(),
			Email:        su.email,
			PasswordHash: passwordHash,
			FullName:     su.fullName,
			Role:         su.role,
			Status:       domain.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create %s: %v", su.email, err)
		}
		log.Printf("created %s (%s)", su.email, su.role)
	}

	log.Println("seed complete")
}
