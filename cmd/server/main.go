package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"scorebridge/internal/config"
	"scorebridge/internal/database"
	"scorebridge/internal/handlers"
	"scorebridge/internal/repository"
	"scorebridge/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Repositories
	studentRepo := repository.NewStudentRepository(db)
	resultRepo := repository.NewResultRepository(db)
	benefitRepo := repository.NewBenefitRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	importLogRepo := repository.NewImportLogRepository(db)

	// Services
	studentService := service.NewStudentService(studentRepo, credentialRepo)
	resultService := service.NewResultService(resultRepo)
	benefitService := service.NewBenefitService(benefitRepo, resultRepo, studentRepo)
	importService := service.NewImportService(db, studentService, resultService, benefitService, importLogRepo)

	// Handlers
	importHandler := handlers.NewImportHandler(importService, importLogRepo, cfg.UploadMaxSize)
	resultHandler := handlers.NewResultHandler(resultService, studentRepo)
	benefitHandler := handlers.NewBenefitHandler(benefitService, benefitRepo)
	studentHandler := handlers.NewStudentHandler(studentRepo, resultRepo, benefitRepo)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /imports", importHandler.Upload)
	mux.HandleFunc("GET /imports", importHandler.List)
	mux.HandleFunc("GET /imports/{id}", importHandler.Get)

	mux.HandleFunc("POST /results", resultHandler.Register)
	mux.HandleFunc("POST /results/{id}/void", resultHandler.Void)

	mux.HandleFunc("POST /benefits/recompute", benefitHandler.Recompute)
	mux.HandleFunc("POST /benefits/{id}/activate", benefitHandler.Activate)
	mux.HandleFunc("POST /benefits/{id}/deactivate", benefitHandler.Deactivate)

	mux.HandleFunc("GET /students", studentHandler.List)
	mux.HandleFunc("GET /students/{document}", studentHandler.Get)
	mux.HandleFunc("GET /students/{document}/results", studentHandler.Results)
	mux.HandleFunc("GET /students/{document}/benefits", studentHandler.Benefits)
	mux.HandleFunc("GET /stats", studentHandler.Stats)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.LogRequests(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server started on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
