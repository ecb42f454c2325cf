package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"communitypulse/internal/delivery/http/controllers"
	"communitypulse/internal/delivery/http/middleware"
	"communitypulse/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Moderation routes (event patch/delete, user listing, ban, verify) require
// a Bearer token; event submission and interest registration do not.
func NewRouter(logger *slog.Logger,
	verifier domain.TokenVerifier,
	allowedOrigins []string,
	eventController *controllers.EventController,
	userController *controllers.UserController,
	authController *controllers.AuthController,
) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("POST /events", eventController.Create)
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("GET /events/{id}", eventController.Get)
	mux.HandleFunc("PATCH /events/{id}", requireAuth(eventController.Patch))
	mux.HandleFunc("DELETE /events/{id}", requireAuth(eventController.Delete))
	mux.HandleFunc("POST /events/{id}/interest", eventController.RegisterInterest)

	// Users
	mux.HandleFunc("GET /users", requireAuth(userController.List))
	mux.HandleFunc("PATCH /users/{id}/ban", requireAuth(userController.Ban))
	mux.HandleFunc("PATCH /users/{id}/verify", requireAuth(userController.Verify))

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(allowedOrigins, middleware.LoggingMiddleware(logger, mux))
}
