// Package ui exposes the dashboard HTTP API: survival timeline views, the
// staged investigation workflow, and gated strategy output.
package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchscope/app"
	"switchscope/internal"
	"switchscope/internal/config"
)

// Server is the dashboard web server.
type Server struct {
	router         *gin.Engine
	dashboards     *app.DashboardService
	investigations *app.InvestigationService
	defaultProduct string
	log            *internal.Logger
}

// NewServer wires the dashboard routes.
func NewServer(cfg config.ServerConfig, dashboards *app.DashboardService, investigations *app.InvestigationService, defaultProduct string) *Server {
	gin.SetMode(cfg.GinMode)
	s := &Server{
		router:         gin.New(),
		dashboards:     dashboards,
		investigations: investigations,
		defaultProduct: defaultProduct,
		log:            internal.DefaultLogger.With("ui"),
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/api/hcps/:id", s.handleHCPSummary)
	s.router.GET("/api/hcps/:id/overview", s.handleOverview)
	s.router.GET("/api/hcps/:id/report.xlsx", s.handleReport)

	s.router.POST("/api/hcps/:id/investigation/start", s.handleStart)
	s.router.POST("/api/hcps/:id/investigation/advance", s.handleAdvance)
	s.router.GET("/api/hcps/:id/investigation/activity", s.handleActivity)

	// Wire-compatible routes matching the upstream service's shapes.
	s.router.GET("/api/ai/investigation-results/:id", s.handleResults)
	s.router.POST("/api/ai/investigate/:id", s.handleInvestigate)
	s.router.POST("/api/ai/confirm-investigation/:id", s.handleConfirm)
	s.router.GET("/api/ai/nba-results/:id", s.handleStrategies)
}

// Handler returns the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on the given port.
func (s *Server) Run(port string) error {
	s.log.Info("dashboard listening on :%s", port)
	return s.router.Run(":" + port)
}
