// Package api wires the HTTP surface of the shopping-lists service.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/open2log/shopping-lists/internal/auth"
	"github.com/open2log/shopping-lists/internal/middleware"
	"github.com/open2log/shopping-lists/internal/storage"
)

// Server holds the router and the storage backend behind the HTTP handlers.
type Server struct {
	router *gin.Engine
	store  storage.Store
}

// NewServer creates the API server. jwtManager may be nil, in which case only
// the identity header is accepted.
func NewServer(store storage.Store, jwtManager *auth.JWTManager) *Server {
	s := &Server{store: store}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.IdentityHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Unauthenticated endpoints
	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Everything under /lists requires a caller identity
	lists := router.Group("/lists")
	lists.Use(middleware.RequireIdentity(jwtManager))
	{
		lists.GET("", s.listLists)
		lists.POST("", s.createList)
		lists.GET("/:id", s.getList)
		lists.DELETE("/:id", s.deleteList)
		lists.POST("/:id/items", s.addItem)
	}

	s.router = router
	return s
}

// Router returns the gin engine, exposed for tests and for the h2c wrapper
// in cmd/server.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
