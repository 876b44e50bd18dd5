package main

import (
	"log"

	api "jobtracker-backend/cmd/api"
	authdomain "jobtracker-backend/internal/auth/domain"
	authRepo "jobtracker-backend/internal/auth/repository"
	authUsecase "jobtracker-backend/internal/auth/usecase"
	emailUsecase "jobtracker-backend/internal/email/usecase"
	"jobtracker-backend/pkg/config"
	"jobtracker-backend/pkg/database"
	"jobtracker-backend/pkg/gmail"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database. A nil db is tolerated: repositories fall back to
	// their in-memory store so the service stays up without Postgres.
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Printf("[WARN] Failed to connect to database, running on in-memory stores: %v", err)
		db = nil
	}

	if db != nil {
		if err := db.AutoMigrate(&authdomain.User{}, &authdomain.OAuthCredential{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	credRepo := authRepo.NewCredentialRepository(db)

	// Initialize Gmail service
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, credRepo, gmailService, cfg)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(credRepo, gmailService)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, emailUsecaseInstance, cfg)

	addr := cfg.Host + ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := handler.Start(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
