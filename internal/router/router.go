package router

import (
	"github.com/amalSheikhdaher/Simple-Library-API/internal/config"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/handler"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/middleware"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/repository"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/service"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/validation"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service/Validator ← Repository ← DB.
// rdb is optional; when set the rate limiter is shared through redis.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimitPerMinute)
	if rdb != nil {
		limiter = middleware.NewFallbackLimiter(middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMinute), limiter)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(limiter))

	// ── Repositories ─────────────────────────────────────────────────────────
	categoryRepo := repository.NewCategoryRepository(db)
	bookRepo := repository.NewBookRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	categorySvc := service.NewCategoryService(categoryRepo)
	bookSvc := service.NewBookService(bookRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	booksH := handler.NewBooksHandler(bookSvc, categorySvc, validation.NewBookValidator(categoryRepo))
	categoriesH := handler.NewCategoriesHandler(categorySvc, validation.NewCategoryValidator(categoryRepo))

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	// Every resource route answers both at the root and under /api.
	for _, g := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api")} {
		books := g.Group("/books")
		{
			books.GET("", booksH.List)
			books.POST("", booksH.Store)
			books.GET("/:id", booksH.Show)
			books.PUT("/:id", booksH.Update)
			books.DELETE("/:id", booksH.Destroy)
		}

		categories := g.Group("/categories")
		{
			categories.GET("", categoriesH.List)
			categories.POST("", categoriesH.Store)
			categories.GET("/:id", categoriesH.Show)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Destroy)
			categories.GET("/:id/books", booksH.ByCategory)
		}
	}

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
