package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"camperhub/internal/infra/config"
	"camperhub/internal/infra/obs"
)

type AuthHTTP interface {
	Login(c *gin.Context)
	CreateAccount(c *gin.Context)
	Me(c *gin.Context)
}

type AdminHTTP interface {
	ListUsers(c *gin.Context)
	UpdateUserStatus(c *gin.Context)
	OwnerStats(c *gin.Context)
}

type CamperHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	UpdatePricing(c *gin.Context)
	Quote(c *gin.Context)
	Availability(c *gin.Context)
	UploadPhoto(c *gin.Context)
}

type Handlers struct {
	Auth           AuthHTTP
	Admin          AdminHTTP
	Camper         CamperHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg)))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/admin/login", h.Auth.Login)
		api.POST("/admin/accounts", h.Auth.CreateAccount)
		api.GET("/admin/me", h.Auth.Me)
	}
	if h.Admin != nil {
		api.GET("/admin/users", h.Admin.ListUsers)
		api.PATCH("/admin/users/:id/status", h.Admin.UpdateUserStatus)
		api.GET("/admin/stats/owners", h.Admin.OwnerStats)
	}
	if h.Camper != nil {
		api.POST("/campers", h.Camper.Create)
		api.GET("/campers/:id", h.Camper.Get)
		api.PUT("/campers/:id/pricing", h.Camper.UpdatePricing)
		api.POST("/campers/:id/quote", h.Camper.Quote)
		api.GET("/campers/:id/availability", h.Camper.Availability)
		api.POST("/campers/:id/photos", h.Camper.UploadPhoto)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func corsConfig(cfg config.Config) cors.Config {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
