// Package server contains the HTTP handlers and routing for the portfolio API.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"atelier/internal/assistant"
	"atelier/internal/cache"
	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/mailer"
	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/repository"
	"atelier/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	sessionCookie = "atelier_session"
	tokenIssuer   = "atelier-api"
	tokenAudience = "atelier-admin"
	sessionTTL    = 24 * time.Hour
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	dispatcher     *mailer.Dispatcher

	profileRepo    repository.ProfileRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	journeyRepo    repository.JourneyRepository
	documentRepo   repository.DocumentRepository
	contactRepo    repository.ContactRepository
	subscriberRepo repository.SubscriberRepository
	blocklistRepo  repository.BlocklistRepository

	profileService    *service.ProfileService
	postService       *service.PostService
	commentService    *service.CommentService
	journeyService    *service.JourneyService
	documentService   *service.DocumentService
	contactService    *service.ContactService
	followService     *service.FollowService
	moderationService *service.ModerationService
	chatService       *service.ChatService
}

// NewServer creates a server instance, establishing the database and Redis
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient, mailer.NewSMTPSender(cfg))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, sender mailer.Sender) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("atelier-api"),
		dispatcher:     mailer.NewDispatcher(sender, 64),
		profileRepo:    repository.NewProfileRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		journeyRepo:    repository.NewJourneyRepository(db),
		documentRepo:   repository.NewDocumentRepository(db),
		contactRepo:    repository.NewContactRepository(db),
		subscriberRepo: repository.NewSubscriberRepository(db),
		blocklistRepo:  repository.NewBlocklistRepository(db),
	}

	server.profileService = service.NewProfileService(server.profileRepo)
	server.postService = service.NewPostService(server.postRepo, server.blocklistRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo, server.blocklistRepo)
	server.journeyService = service.NewJourneyService(server.journeyRepo)
	server.documentService = service.NewDocumentService(server.documentRepo, cfg.UploadDir)
	server.contactService = service.NewContactService(server.contactRepo, server.dispatcher, cfg.MailTo)
	server.followService = service.NewFollowService(server.subscriberRepo)
	server.moderationService = service.NewModerationService(server.blocklistRepo)
	server.chatService = service.NewChatService(assistant.NewClient(cfg))

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Page routes
	app.Get("/", s.Home)
	app.Get("/dashboard", s.Dashboard)
	app.Get("/logout", s.Logout)

	// Crawler surface
	app.Get("/robots.txt", s.RobotsTxt)
	app.Get("/sitemap.xml", s.SitemapXML)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Atelier Backend Metrics Dashboard",
	}))

	// Admin session issuance. Registered on the api group so it stays outside
	// the AdminRequired gate below. /api/login is a legacy alias.
	api.Post("/admin/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "admin_login"), s.AdminLogin)
	api.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "admin_login"), s.AdminLogin)

	// Public content routes. Content mutations share their public paths and
	// are gated per route.
	api.Get("/profile", s.GetProfile)
	api.Put("/profile", s.AdminRequired(), s.UpdateProfile)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.AdminRequired(), s.CreatePost)
	// Specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:id/like", middleware.RateLimit(
		s.redis, 30, time.Minute, "like_post"), s.LikePost)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment)
	posts.Delete("/:id/comments/:commentId", s.AdminRequired(), s.DeleteComment)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.AdminRequired(), s.UpdatePost)
	posts.Delete("/:id", s.AdminRequired(), s.DeletePost)

	journey := api.Group("/journey")
	journey.Get("/", s.GetJourney)
	journey.Post("/", s.AdminRequired(), s.CreateJourneyEntry)
	journey.Put("/:id", s.AdminRequired(), s.UpdateJourneyEntry)
	journey.Delete("/:id", s.AdminRequired(), s.DeleteJourneyEntry)

	documents := api.Group("/documents")
	documents.Get("/", s.GetDocuments)
	documents.Get("/:id/download", s.DownloadDocument)
	documents.Post("/", s.AdminRequired(), s.UploadDocument)
	documents.Delete("/:id", s.AdminRequired(), s.DeleteDocument)

	api.Post("/contact", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "contact"), s.SubmitContact)
	api.Post("/follow", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "follow"), s.Follow)

	// Assistant chat. /api/gemini and /api/smart_connect are legacy aliases.
	api.Post("/chat", middleware.RateLimit(
		s.redis, 10, time.Minute, "chat"), s.Chat)
	api.Post("/gemini", middleware.RateLimit(
		s.redis, 10, time.Minute, "chat"), s.Chat)
	api.Post("/smart_connect", middleware.RateLimit(
		s.redis, 10, time.Minute, "chat"), s.Chat)

	// Admin-only surfaces
	admin := api.Group("/admin", s.AdminRequired())
	admin.Get("/messages", s.GetMessages)
	admin.Post("/messages/:id/reply", s.ReplyMessage)

	admin.Get("/subscribers", s.GetSubscribers)

	admin.Get("/blocked-users", s.GetBlockedUsers)
	admin.Post("/blocked-users", s.BlockUser)
	admin.Delete("/blocked-users/:id", s.UnblockUser)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. The database is required;
// Redis is reported but the app serves without it.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects requests without a valid
// admin session token (cookie or Bearer header) with 401.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.hasAdminSession(c) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Admin access required"))
		}
		return c.Next()
	}
}

// hasAdminSession reports whether the request carries a valid, unrevoked
// admin session token.
func (s *Server) hasAdminSession(c *fiber.Ctx) bool {
	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return false
	}
	if admin, adminOk := claims["admin"].(bool); !adminOk || !admin {
		return false
	}

	// Check JTI for revocation
	if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
		revoked, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
		if err == nil && revoked > 0 {
			return false
		}
	}
	return true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Atelier API",
		BodyLimit: 30 << 20, // headroom above the 25 MiB document cap
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server, draining queued mail before
// closing the database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	s.dispatcher.Shutdown(ctx)

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
