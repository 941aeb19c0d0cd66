package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garydamm/hackathon-manager/internal/api"
	"github.com/garydamm/hackathon-manager/internal/app/service"
	"github.com/garydamm/hackathon-manager/internal/common/ratelimit"
	"github.com/garydamm/hackathon-manager/internal/common/security"
	"github.com/garydamm/hackathon-manager/internal/domain/repository"
	"github.com/garydamm/hackathon-manager/internal/platform/cache"
	"github.com/garydamm/hackathon-manager/internal/platform/config"
	"github.com/garydamm/hackathon-manager/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	eventRepo := repository.NewPgEventRepository(database.DB)
	roleRepo := repository.NewPgRoleRepository(database.DB)
	teamRepo := repository.NewPgTeamRepository(database.DB)
	projectRepo := repository.NewPgProjectRepository(database.DB)
	criterionRepo := repository.NewPgCriterionRepository(database.DB)
	assignmentRepo := repository.NewPgAssignmentRepository(database.DB)
	scoreRepo := repository.NewPgScoreRepository(database.DB)

	// 6. Initialize Services
	loginLimiter := ratelimit.NewRedisLimiter(cache.RDB, "ratelimit", config.AppConfig.LoginRateLimitMax)
	accessService := service.NewAccessService(roleRepo, userRepo)
	authService := service.NewAuthService(userRepo, loginLimiter, config.AppConfig.LoginRateLimitWindow)
	eventService := service.NewEventService(eventRepo, userRepo, roleRepo, accessService)
	criteriaService := service.NewCriteriaService(criterionRepo, eventRepo, accessService)
	teamService := service.NewTeamService(teamRepo, eventRepo, roleRepo)
	projectService := service.NewProjectService(projectRepo, teamRepo, eventRepo, accessService)
	assignmentService := service.NewAssignmentService(assignmentRepo, projectRepo, eventRepo, scoreRepo, accessService)
	scoringService := service.NewScoringService(assignmentRepo, criterionRepo, scoreRepo)
	leaderboardService := service.NewLeaderboardService(eventRepo, projectRepo, criterionRepo, scoreRepo, accessService)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(
		authService,
		eventService,
		criteriaService,
		teamService,
		projectService,
		assignmentService,
		scoringService,
		leaderboardService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
