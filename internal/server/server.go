// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"stuntcare/internal/auth"
	"stuntcare/internal/blob"
	"stuntcare/internal/cache"
	"stuntcare/internal/config"
	"stuntcare/internal/middleware"
	"stuntcare/internal/repository"
	"stuntcare/internal/service"
	"stuntcare/internal/storage"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	redis          *redis.Client
	provider       auth.Provider
	promMiddleware *fiberprometheus.FiberPrometheus

	parentRepo repository.ParentRepository
	childRepo  repository.ChildRepository
	growthRepo repository.GrowthHistoryRepository
	foodRepo   repository.DailyFoodRepository

	parentService  *service.ParentService
	childService   *service.ChildService
	foodService    *service.DailyFoodService
	articleService *service.ArticleService
	doctorService  *service.DoctorService
}

// NewServer wires a Server from already-initialized infrastructure. The
// bootstrap layer (or a test) establishes the store, blob store, auth
// provider and Redis client.
func NewServer(cfg *config.Config, store storage.EntityStore, blobs blob.Store, provider auth.Provider, redisClient *redis.Client) *Server {
	parentRepo := repository.NewParentRepository(store)
	childRepo := repository.NewChildRepository(store)
	growthRepo := repository.NewGrowthHistoryRepository(store)
	foodRepo := repository.NewDailyFoodRepository(store)
	articleRepo := repository.NewArticleRepository(store)
	doctorRepo := repository.NewDoctorRepository(store)

	media := service.NewMediaWorkflow(blobs, cfg.DefaultImageURL)
	cascade := service.NewCascadeCoordinator(parentRepo, childRepo, growthRepo, foodRepo, media)
	c := cache.New(redisClient)

	return &Server{
		config:         cfg,
		redis:          redisClient,
		provider:       provider,
		promMiddleware: middleware.InitMetrics("stuntcare-api"),
		parentRepo:     parentRepo,
		childRepo:      childRepo,
		growthRepo:     growthRepo,
		foodRepo:       foodRepo,
		parentService:  service.NewParentService(parentRepo, childRepo, provider, media, cascade),
		childService:   service.NewChildService(parentRepo, childRepo, growthRepo, media, cascade, service.ThresholdClassifier{}),
		foodService:    service.NewDailyFoodService(childRepo, foodRepo, media),
		articleService: service.NewArticleService(articleRepo, parentRepo, media, c),
		doctorService:  service.NewDoctorService(doctorRepo, c),
	}
}

// App builds the Fiber application with middleware and routes configured.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  time.Duration(s.config.RequestTimeout) * time.Second,
		ErrorHandler: fiberErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// CORS runs before anything that can short-circuit so browser clients
	// still receive the headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	app.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Get("/logout", s.Logout)

	authRequired := middleware.AuthRequired(s.provider)

	// Parent routes, including the nested child and food diary resources.
	parent := app.Group("/parent/:userId", authRequired)
	parent.Get("/", s.GetParent)
	parent.Put("/", s.UpdateParent)
	parent.Delete("/", s.DeleteParent)

	child := parent.Group("/child")
	child.Get("/", s.ListChildren)
	child.Post("/", s.CreateChild)
	child.Get("/:id", s.GetChild)
	child.Put("/:id", s.UpdateChild)
	child.Delete("/:id", s.DeleteChild)
	child.Get("/:id/food", s.ListDailyFood)
	child.Post("/:id/food", s.CreateDailyFood)

	articles := app.Group("/articles")
	articles.Get("/", s.ListArticles)
	articles.Get("/:id", s.GetArticle)
	articles.Post("/", authRequired, s.CreateArticle)
	articles.Put("/:id", authRequired, s.UpdateArticle)
	articles.Delete("/:id", authRequired, s.DeleteArticle)
	articles.Post("/:id/like", authRequired, s.LikeArticle)

	doctors := app.Group("/doctors", authRequired)
	doctors.Get("/", s.ListDoctors)
	doctors.Get("/:id", s.GetDoctor)
}

// HealthCheck reports liveness plus the cache connection state.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}
	return c.JSON(fiber.Map{
		"status": "up",
		"redis":  redisStatus,
		"time":   time.Now().UTC(),
	})
}
