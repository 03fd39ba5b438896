// Command seed populates a database with demo users and concerts for
// local development and load testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"stagepass/internal/config"
	"stagepass/internal/database"
	"stagepass/internal/logger"
	"stagepass/internal/models"
	"stagepass/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	userCount    = flag.Int("users", 10, "Number of demo users to create")
	concertCount = flag.Int("concerts", 5, "Number of demo concerts to create")
	clearFirst   = flag.Bool("clear", false, "Delete existing reservations, concerts and users first")
	dryRun       = flag.Bool("dry-run", false, "Show what would be created without writing")
)

var concertNames = []string{
	"Symphony Under the Stars",
	"Midnight Jazz Sessions",
	"Electric Summer Festival",
	"Acoustic Evening",
	"The Farewell Tour",
	"Opera Gala Night",
	"Indie Rock Showcase",
	"Piano Recital Series",
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if *dryRun {
		slog.Info("Dry run", "users", *userCount, "concerts", *concertCount, "clear", *clearFirst)
		return
	}

	ctx := context.Background()

	if *clearFirst {
		for _, table := range []string{"reservations", "concerts", "users"} {
			if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				slog.Error("Failed to clear table", "table", table, "error", err)
				os.Exit(1)
			}
		}
		slog.Info("Cleared existing data")
	}

	repos := repository.NewRepositories(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), 10)
	if err != nil {
		slog.Error("Failed to hash demo password", "error", err)
		os.Exit(1)
	}

	admin := &models.User{
		Email:        "admin@stagepass.local",
		Name:         "Demo Admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := repos.Users.Create(ctx, admin); err != nil {
		slog.Error("Failed to create admin", "error", err)
		os.Exit(1)
	}
	slog.Info("Created admin", "id", admin.ID, "email", admin.Email)

	for i := 1; i <= *userCount; i++ {
		user := &models.User{
			Email:        fmt.Sprintf("user%d@stagepass.local", i),
			Name:         fmt.Sprintf("Demo User %d", i),
			PasswordHash: string(hash),
			Role:         models.RoleUser,
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			slog.Error("Failed to create user", "email", user.Email, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Created users", "count", *userCount)

	for i := 0; i < *concertCount; i++ {
		concert := &models.Concert{
			Name:        concertNames[i%len(concertNames)],
			Description: "Demo concert seeded for local development.",
			TotalSeats:  50 + rand.Intn(451),
		}
		if err := repos.Concerts.Create(ctx, concert); err != nil {
			slog.Error("Failed to create concert", "name", concert.Name, "error", err)
			os.Exit(1)
		}
		slog.Info("Created concert", "id", concert.ID, "name", concert.Name, "seats", concert.TotalSeats)
	}

	slog.Info("Seeding complete")
}
