package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/contractdesk/go-contract-backend/internal/api/http"
	"github.com/contractdesk/go-contract-backend/internal/api/http/middleware"
	"github.com/contractdesk/go-contract-backend/internal/assets"
	assethttp "github.com/contractdesk/go-contract-backend/internal/assets/http"
	"github.com/contractdesk/go-contract-backend/internal/catalog"
	cataloghttp "github.com/contractdesk/go-contract-backend/internal/catalog/http"
	"github.com/contractdesk/go-contract-backend/internal/designer/render"
	"github.com/contractdesk/go-contract-backend/internal/designer/rules"
	"github.com/contractdesk/go-contract-backend/internal/sessions"
	sessionhttp "github.com/contractdesk/go-contract-backend/internal/sessions/http"
	templatehttp "github.com/contractdesk/go-contract-backend/internal/templates/http"
	"github.com/contractdesk/go-contract-backend/internal/templates/repository"
	"github.com/contractdesk/go-contract-backend/internal/templates/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Catalog        *catalog.Catalog
	Engine         *rules.Engine
	Registry       *render.Registry
	DB             *pgxpool.Pool
	SQLDB          *sql.DB
	Redis          *redis.Client
	SessionTTL     time.Duration
	Uploader       *assets.Uploader
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())
	if dep.RateLimitRPS > 0 {
		r.Use(middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	catalogHandler := cataloghttp.NewHandler(dep.Catalog, dep.Engine)
	cataloghttp.Register(api.Group("/catalog"), catalogHandler)

	templateRepo := repository.NewTemplateRepository(dep.DB)
	versionRepo := repository.NewVersionRepository(dep.SQLDB)
	templateSvc := service.NewTemplateService(templateRepo, versionRepo)
	templatehttp.Register(api.Group("/templates"), templatehttp.NewHandler(templateSvc))

	sessionRepo := sessions.NewRepo(dep.Redis, dep.SessionTTL)
	sessionSvc := sessions.NewService(sessionRepo, templateSvc, dep.Catalog, dep.Engine, dep.Registry)
	sessionhttp.Register(api.Group("/sessions"), sessionhttp.NewHandler(sessionSvc, render.DefaultContext()))

	assethttp.Register(api.Group("/assets"), assethttp.NewHandler(dep.Uploader))

	return r
}
