package api

import (
	"net/http"
	"time"

	"github.com/garydamm/hackathon-manager/internal/api/handler"
	"github.com/garydamm/hackathon-manager/internal/api/middleware"
	"github.com/garydamm/hackathon-manager/internal/app/service"
	"github.com/garydamm/hackathon-manager/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	eventService *service.EventService,
	criteriaService *service.CriteriaService,
	teamService *service.TeamService,
	projectService *service.ProjectService,
	assignmentService *service.AssignmentService,
	scoringService *service.ScoringService,
	leaderboardService *service.LeaderboardService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token when present, puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Everything else requires an authenticated user.
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.Authenticator)

			eventHandler := handler.NewEventHandler(eventService)
			criteriaHandler := handler.NewCriteriaHandler(criteriaService)
			teamHandler := handler.NewTeamHandler(teamService)
			projectHandler := handler.NewProjectHandler(projectService)
			assignmentHandler := handler.NewAssignmentHandler(assignmentService, scoringService)
			leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)

			authed.Route("/events", func(ev chi.Router) {
				eventHandler.RegisterRoutes(ev)
				ev.Route("/{eventID}/criteria", criteriaHandler.RegisterRoutes)
				ev.Route("/{eventID}/teams", teamHandler.RegisterRoutes)
				ev.Route("/{eventID}/projects", projectHandler.RegisterRoutes)
				ev.Get("/{eventID}/assignments", assignmentHandler.ListMyAssignments)
				ev.Get("/{eventID}/leaderboard", leaderboardHandler.GetLeaderboard)
			})

			authed.Route("/assignments", assignmentHandler.RegisterRoutes)
		})
	})

	return r
}
