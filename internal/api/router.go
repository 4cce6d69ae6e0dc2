package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell/internal/api/handler"
	customMiddleware "github.com/inkwell-app/inkwell/internal/api/middleware"
	"github.com/inkwell-app/inkwell/internal/config"
	"github.com/inkwell-app/inkwell/internal/repository/postgres"
	"github.com/inkwell-app/inkwell/internal/repository/redis"
	"github.com/inkwell-app/inkwell/internal/security"
	"github.com/inkwell-app/inkwell/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client, dispatcher *service.Dispatcher) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger(log.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	articleRepo := postgres.NewArticleRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	watchRepo := postgres.NewWatchRepository(db)
	readStateRepo := postgres.NewReadStateRepository(db)

	// Redis-backed pieces
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	unreadCache := redis.NewUnreadCache(redisClient)
	publisher := redis.NewNotificationPublisher(redisClient)

	// Initialize services
	authz := service.NewAuthorizer(workspaceRepo)
	auditRecorder := service.NewAuditRecorder(auditRepo, authz)
	notificationService := service.NewNotificationService(
		notificationRepo,
		watchRepo,
		workspaceRepo,
		unreadCache,
		publisher,
	).WithDispatcher(dispatcher)
	authService := service.NewAuthService(userRepo, workspaceRepo, jwtManager)
	workspaceService := service.NewWorkspaceService(workspaceRepo, authz, auditRecorder, notificationService)
	articleService := service.NewArticleService(articleRepo, authz, notificationService)
	reviewService := service.NewReviewService(db, articleRepo, reviewRepo, auditRepo, authz, notificationService)
	readStateService := service.NewReadStateService(readStateRepo, authz)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	articleHandler := handler.NewArticleHandler(articleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	watchHandler := handler.NewWatchHandler(notificationService)
	readStateHandler := handler.NewReadStateHandler(readStateService)
	auditHandler := handler.NewAuditHandler(auditRecorder)
	streamHandler := handler.NewStreamHandler(publisher, log.Logger)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/me", authHandler.Me)
			r.Get("/stream", streamHandler.Stream)

			// Workspace routes
			r.Route("/workspaces", func(r chi.Router) {
				r.Get("/", workspaceHandler.List)
				r.Post("/", workspaceHandler.Create)

				r.Route("/{workspaceID}", func(r chi.Router) {
					r.Use(customMiddleware.WorkspaceContext)

					r.Get("/", workspaceHandler.Get)
					r.Patch("/", workspaceHandler.Update)
					r.Delete("/", workspaceHandler.Delete)

					// Membership
					r.Route("/members", func(r chi.Router) {
						r.Get("/", workspaceHandler.ListMembers)
						r.Post("/", workspaceHandler.AddMember)
						r.Patch("/{userID}", workspaceHandler.ChangeMemberRole)
						r.Delete("/{userID}", workspaceHandler.RemoveMember)
					})

					// Articles and revisions
					r.Route("/articles", func(r chi.Router) {
						r.Get("/", articleHandler.List)
						r.Post("/", articleHandler.Create)

						r.Route("/{articleID}", func(r chi.Router) {
							r.Get("/", articleHandler.Get)
							r.Get("/revisions", articleHandler.ListRevisions)
							r.Post("/revisions", articleHandler.CreateRevision)
						})
					})

					r.Route("/revisions/{revisionID}", func(r chi.Router) {
						r.Get("/", articleHandler.GetRevision)
						r.Post("/submit", reviewHandler.Submit)
						r.Post("/approve", reviewHandler.Approve)
						r.Post("/reject", reviewHandler.Reject)
					})

					// Review requests
					r.Route("/reviews", func(r chi.Router) {
						r.Get("/", reviewHandler.ListOpen)
						r.Post("/{requestID}/assign", reviewHandler.Assign)
					})

					// Notifications
					r.Route("/notifications", func(r chi.Router) {
						r.Get("/", notificationHandler.List)
						r.Get("/unread", notificationHandler.UnreadCount)
						r.Post("/{notificationID}/read", notificationHandler.MarkRead)
						r.Post("/read-all", notificationHandler.MarkAllRead)
					})

					// Watches
					r.Route("/watches", func(r chi.Router) {
						r.Post("/", watchHandler.Subscribe)
						r.Delete("/", watchHandler.Unsubscribe)
					})

					// Read state
					r.Route("/read-state", func(r chi.Router) {
						r.Get("/", readStateHandler.Get)
						r.Post("/", readStateHandler.Mark)
					})

					// Audit log
					r.Get("/audit", auditHandler.List)
				})
			})
		})
	})

	return r
}
