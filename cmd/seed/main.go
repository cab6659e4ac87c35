package main

import (
	"context"
	"log"

	"notes-sharing-be/internal/config"
	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/pkg/logger"
	"notes-sharing-be/internal/repository/specification"
	"notes-sharing-be/internal/repository/unitofwork"
	"notes-sharing-be/internal/service"
	"notes-sharing-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds two demo users, a few notes, and one share between them. Safe to run
// repeatedly, existing users are reused.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("DB_URI must be set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	ledger := service.NewSharingLedger(appLogger)
	notes := service.NewNoteService(uowFactory, ledger, nil, appLogger)

	alice := ensureUser(ctx, uowFactory, "alice", "alice@example.com", "password123")
	bob := ensureUser(ctx, uowFactory, "bob", "bob@example.com", "password123")

	groceries, err := notes.Create(ctx, alice, &dto.CreateNoteRequest{
		Title:   "Groceries",
		Content: "Milk, eggs, coffee beans",
	})
	if err != nil {
		log.Fatalf("Failed to seed note: %v", err)
	}
	if _, err := notes.Create(ctx, alice, &dto.CreateNoteRequest{
		Title:   "Meeting notes",
		Content: "Discuss Q4 roadmap with the platform team",
	}); err != nil {
		log.Fatalf("Failed to seed note: %v", err)
	}
	if _, err := notes.Create(ctx, bob, &dto.CreateNoteRequest{
		Title:   "Workout plan",
		Content: "Monday squats, Wednesday deadlifts, Friday bench",
	}); err != nil {
		log.Fatalf("Failed to seed note: %v", err)
	}

	if err := notes.Share(ctx, alice, groceries.Id, bob); err != nil {
		color.Yellow("Share skipped: %v", err)
	}

	color.Green("Seed completed")
	color.Cyan("  alice / password123")
	color.Cyan("  bob   / password123")
}

func ensureUser(ctx context.Context, uowFactory unitofwork.RepositoryFactory, username, email, password string) uuid.UUID {
	uow := uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		log.Fatalf("Failed to look up user %s: %v", username, err)
	}
	if existing != nil {
		color.Yellow("User %s already exists", username)
		return existing.Id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user %s: %v", username, err)
	}

	color.Green("Created user %s", username)
	return user.Id
}
