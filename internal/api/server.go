package api

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yizeng/gab/gin/mongo/inventory/docs"
	v1 "github.com/yizeng/gab/gin/mongo/inventory/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/api/middleware"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/config"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/db"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Feed   *v1.ItemFeedHandler

	conn     db.Connection
	draining atomic.Bool
	exit     func(code int)
}

// NewServer wires the item stack on top of an open connection. itemDAO must
// be backed by conn.
func NewServer(conf *config.AppConfig, conn db.Connection, itemDAO repository.ItemDAO) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		Config: conf,
		Router: engine,
		Feed:   v1.NewItemFeedHandler(),
		conn:   conn,
		exit:   defaultExit,
	}

	s.MountMiddlewares()

	itemHandler := s.initItemHandler(itemDAO)
	readinessHandler := v1.NewReadinessHandler(s.Ready)
	s.MountHandlers(itemHandler, readinessHandler)

	return s
}

func (s *Server) initItemHandler(itemDAO repository.ItemDAO) *v1.ItemHandler {
	repo := repository.NewItemRepository(itemDAO)
	svc := service.NewItemService(repo, s.Feed)
	handler := v1.NewItemHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Logger(probePaths...))
	s.Router.Use(middleware.Metrics())
	s.Router.Use(middleware.Recovery())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

var probePaths = []string{"/healthz", "/health", "/readyz", "/ready", "/metrics"}

func (s *Server) MountHandlers(itemHandler *v1.ItemHandler, readinessHandler *v1.ReadinessHandler) {
	const basePath = "/api"

	s.Router.GET("/healthz", v1.HandleHealthcheck)
	s.Router.GET("/health", v1.HandleHealthcheck)
	s.Router.GET("/readyz", readinessHandler.HandleReady)
	s.Router.GET("/ready", readinessHandler.HandleReady)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.Router.Group(basePath, middleware.RateLimit(s.Config.API.RateLimit, s.Config.API.RateLimitBurst))
	{
		api.POST("/items", itemHandler.HandleCreateItem)
		api.GET("/items", itemHandler.HandleListItems)
		api.DELETE("/items/:itemID", itemHandler.HandleDeleteItem)
		api.GET("/items/watch", s.Feed.HandleWatchItems)
	}

	s.Router.NoRoute(func(ctx *gin.Context) {
		response.RenderErr(ctx, response.ErrNotFound())
	})
	s.Router.NoMethod(func(ctx *gin.Context) {
		response.RenderErr(ctx, response.ErrMethodNotAllowed())
	})

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Title = "Inventory API"
	docs.SwaggerInfo.Description = "Item store backed by MongoDB."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// Ready is true while the persistence connection is connected and the server
// is not draining.
func (s *Server) Ready() bool {
	return !s.draining.Load() && db.Ready(s.conn)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
