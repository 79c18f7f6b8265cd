package router

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssaandco/aicatalog/internal/config"
	"github.com/ssaandco/aicatalog/internal/handlers"
	"github.com/ssaandco/aicatalog/internal/middleware"
	"github.com/ssaandco/aicatalog/internal/response"
)

const clientDist = "client/dist"

func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins: splitOrigins(cfg.CORSOrigin),
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Authorization",
			"Accept", "X-Requested-With", "X-Request-ID",
		},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authn := middleware.Auth(cfg)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		if !cfg.IsProduction() {
			api.GET("/debug/auth", authn, handlers.DebugAuth)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/register", authn, middleware.RequireAdmin(), handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", authn, handlers.AuthMe)
		}

		api.GET("/me", authn, handlers.Me)

		groups := api.Group("/groups", authn)
		{
			groups.GET("", handlers.ListGroups)
			groups.POST("", middleware.RequireAdmin(), handlers.CreateGroup)
			groups.POST("/members", middleware.RequireAdmin(), handlers.AddGroupMember)
			groups.DELETE("/:groupId", middleware.RequireAdmin(), handlers.DeleteGroup)
			groups.DELETE("/:groupId/members/:userId", middleware.RequireAdmin(), handlers.RemoveGroupMember)
		}

		useCases := api.Group("/use-cases", authn)
		{
			useCases.GET("", handlers.ListUseCases)
			useCases.POST("", handlers.CreateUseCase)
			useCases.GET("/:id", handlers.GetUseCase)
			useCases.PATCH("/:id", handlers.UpdateUseCase)
			useCases.PATCH("/:id/score", middleware.RequireCommitteeOrAdmin(), handlers.ScoreUseCase)
			useCases.DELETE("/:id", middleware.RequireAdmin(), handlers.DeleteUseCase)
		}

		tools := api.Group("/tools", authn)
		{
			tools.GET("", handlers.ListTools)
			tools.GET("/:id", handlers.GetTool)
			tools.POST("", middleware.RequireAdmin(), handlers.CreateTool)
			tools.PATCH("/:id", middleware.RequireAdmin(), handlers.UpdateTool)
			tools.DELETE("/:id", middleware.RequireAdmin(), handlers.DeleteTool)
		}

		users := api.Group("/users", authn)
		{
			users.GET("/owner-candidates", middleware.RequireCommitteeOrAdmin(), handlers.ListOwnerCandidates)
			users.GET("", middleware.RequireAdmin(), handlers.ListUsers)
			users.GET("/:id", middleware.RequireAdmin(), handlers.GetUser)
			users.PATCH("/:id", middleware.RequireAdmin(), handlers.UpdateUser)
			users.DELETE("/:id", middleware.RequireAdmin(), handlers.DeleteUser)
		}
	}

	// Unknown API paths get the JSON envelope; anything else falls through
	// to the built front end when one is deployed alongside.
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.NotFound(c, "Route not found")
			return
		}
		serveSPA(c)
	})

	return r
}

func serveSPA(c *gin.Context) {
	index := filepath.Join(clientDist, "index.html")

	if _, err := os.Stat(index); err != nil {
		response.NotFound(c, "Route not found")
		return
	}

	// Clean against the dist root so "../" cannot escape it.
	requested := filepath.Join(clientDist, filepath.Clean("/"+c.Request.URL.Path))

	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		c.File(requested)
		return
	}

	c.File(index)
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(origin); t != "" {
			origins = append(origins, t)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}
