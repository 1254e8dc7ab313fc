package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crewly/api/internal/config"
	"github.com/crewly/api/internal/database"
	"github.com/crewly/api/internal/handler"
	"github.com/crewly/api/internal/middleware"
	"github.com/crewly/api/internal/repository"
	"github.com/crewly/api/internal/service"
	"github.com/crewly/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Generate signing keys on first run in development
	if cfg.IsDevelopment() {
		if _, err := os.Stat(cfg.JWT.PrivateKeyPath); os.IsNotExist(err) {
			slog.Info("generating development JWT key pair",
				slog.String("private_key", cfg.JWT.PrivateKeyPath),
			)
			if err := jwt.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
				slog.Error("failed to generate JWT key pair", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	eventRepo := repository.NewEventRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	budgetRepo := repository.NewBudgetItemRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService:      jwtService,
		TokenRepo:       tokenRepo,
		RefreshDuration: cfg.JWT.RefreshDuration,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	userService := service.NewUserService(service.UserServiceConfig{
		UserRepo: userRepo,
	})

	membership := service.NewMembershipResolver(teamRepo)

	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo:  eventRepo,
		Membership: membership,
	})

	teamService := service.NewTeamService(service.TeamServiceConfig{
		TeamRepo:   teamRepo,
		EventRepo:  eventRepo,
		UserRepo:   userRepo,
		Membership: membership,
	})

	taskService := service.NewTaskService(service.TaskServiceConfig{
		TaskRepo:   taskRepo,
		EventRepo:  eventRepo,
		UserRepo:   userRepo,
		Membership: membership,
	})

	budgetService := service.NewBudgetService(service.BudgetServiceConfig{
		BudgetRepo: budgetRepo,
		EventRepo:  eventRepo,
		Membership: membership,
	})

	ticketService := service.NewTicketService(service.TicketServiceConfig{
		TicketRepo: ticketRepo,
		EventRepo:  eventRepo,
		Membership: membership,
	})

	messageService := service.NewMessageService(service.MessageServiceConfig{
		MessageRepo: messageRepo,
		EventRepo:   eventRepo,
		Membership:  membership,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: time.Minute,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService)
	teamHandler := handler.NewTeamHandler(teamService)
	taskHandler := handler.NewTaskHandler(taskService)
	budgetItemHandler := handler.NewBudgetItemHandler(budgetService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	messageHandler := handler.NewMessageHandler(messageService)
	profileHandler := handler.NewProfileHandler(handler.ProfileHandlerConfig{
		TicketService: ticketService,
		TeamService:   teamService,
		EventService:  eventService,
	})

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /v1/auth/refresh", authHandler.Refresh)

	// Auth endpoints (protected)
	authMiddleware := middleware.Auth(tokenService)
	mux.Handle("POST /v1/auth/logout", authMiddleware(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// User endpoints (public list, self-only writes)
	mux.HandleFunc("GET /v1/users", userHandler.List)
	mux.Handle("GET /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Get)))
	mux.Handle("PATCH /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Delete)))

	// Event endpoints (public reads, organizer-only writes)
	mux.HandleFunc("GET /v1/events", eventHandler.List)
	mux.HandleFunc("GET /v1/events/{eventId}", eventHandler.Get)
	mux.Handle("POST /v1/events", authMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("PATCH /v1/events/{eventId}", authMiddleware(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /v1/events/{eventId}", authMiddleware(http.HandlerFunc(eventHandler.Delete)))

	// Event-scoped collection endpoints (members only)
	mux.Handle("GET /v1/events/{eventId}/tasks", authMiddleware(http.HandlerFunc(taskHandler.ListByEvent)))
	mux.Handle("GET /v1/events/{eventId}/teams", authMiddleware(http.HandlerFunc(teamHandler.ListByEvent)))
	mux.Handle("GET /v1/events/{eventId}/messages", authMiddleware(http.HandlerFunc(messageHandler.ListByEvent)))

	// Task endpoints
	mux.Handle("POST /v1/tasks", authMiddleware(http.HandlerFunc(taskHandler.Create)))
	mux.Handle("GET /v1/tasks/{taskId}", authMiddleware(http.HandlerFunc(taskHandler.Get)))
	mux.Handle("PATCH /v1/tasks/{taskId}", authMiddleware(http.HandlerFunc(taskHandler.Update)))
	mux.Handle("DELETE /v1/tasks/{taskId}", authMiddleware(http.HandlerFunc(taskHandler.Delete)))

	// Team endpoints
	mux.Handle("POST /v1/teams", authMiddleware(http.HandlerFunc(teamHandler.Create)))
	mux.Handle("GET /v1/teams/{teamId}", authMiddleware(http.HandlerFunc(teamHandler.Get)))
	mux.Handle("PATCH /v1/teams/{teamId}", authMiddleware(http.HandlerFunc(teamHandler.Update)))
	mux.Handle("DELETE /v1/teams/{teamId}", authMiddleware(http.HandlerFunc(teamHandler.Delete)))

	// Budget item endpoints
	mux.Handle("POST /v1/budget-items", authMiddleware(http.HandlerFunc(budgetItemHandler.Create)))
	mux.Handle("GET /v1/budget-items/{budgetItemId}", authMiddleware(http.HandlerFunc(budgetItemHandler.Get)))
	mux.Handle("PATCH /v1/budget-items/{budgetItemId}", authMiddleware(http.HandlerFunc(budgetItemHandler.Update)))
	mux.Handle("DELETE /v1/budget-items/{budgetItemId}", authMiddleware(http.HandlerFunc(budgetItemHandler.Delete)))

	// Ticket endpoints (tickets are immutable; Update always denies)
	mux.Handle("POST /v1/tickets", authMiddleware(http.HandlerFunc(ticketHandler.Create)))
	mux.Handle("GET /v1/tickets/{ticketId}", authMiddleware(http.HandlerFunc(ticketHandler.Get)))
	mux.Handle("PATCH /v1/tickets/{ticketId}", authMiddleware(http.HandlerFunc(ticketHandler.Update)))
	mux.Handle("DELETE /v1/tickets/{ticketId}", authMiddleware(http.HandlerFunc(ticketHandler.Delete)))

	// Message endpoints
	mux.Handle("POST /v1/messages", authMiddleware(http.HandlerFunc(messageHandler.Create)))
	mux.Handle("GET /v1/messages/{messageId}", authMiddleware(http.HandlerFunc(messageHandler.Get)))
	mux.Handle("PATCH /v1/messages/{messageId}", authMiddleware(http.HandlerFunc(messageHandler.Update)))
	mux.Handle("DELETE /v1/messages/{messageId}", authMiddleware(http.HandlerFunc(messageHandler.Delete)))

	// Profile endpoints (requester-scoped views)
	mux.Handle("GET /v1/profile/tickets", authMiddleware(http.HandlerFunc(profileHandler.Tickets)))
	mux.Handle("GET /v1/profile/invitations", authMiddleware(http.HandlerFunc(profileHandler.Invitations)))
	mux.Handle("GET /v1/profile/events/organized", authMiddleware(http.HandlerFunc(profileHandler.OrganizedEvents)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
