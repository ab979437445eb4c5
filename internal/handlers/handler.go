package handlers

import (
	"path/filepath"
	"time"

	_ "mask_monitor/docs"
	"mask_monitor/internal/logger"
	"mask_monitor/internal/metrics"
	"mask_monitor/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultStaticDir      = "static"
	dashboardFile         = "dashboard.html"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	metrics        *metrics.Metrics
	staticDir      string
	maxUploadBytes int64
}

// Option customises a Handler.
type Option func(*Handler)

// WithMetrics enables the request middleware counters and GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithStaticDir sets the directory holding dashboard.html and its assets.
func WithStaticDir(dir string) Option {
	return func(h *Handler) {
		if dir != "" {
			h.staticDir = dir
		}
	}
}

// WithMaxUploadMB caps the /detect/ request body.
func WithMaxUploadMB(mb int) Option {
	return func(h *Handler) {
		if mb > 0 {
			h.maxUploadBytes = int64(mb) << 20
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:       services,
		log:            log,
		staticDir:      defaultStaticDir,
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{requestIDHeader, "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))
	router.Use(h.requestMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	h.registerDetectionRoutes(router)
	h.registerMuteRoutes(router)

	router.GET("/ws", h.wsConnect)

	h.registerDashboard(router)

	return router
}

func (h *Handler) registerDetectionRoutes(r *gin.Engine) {
	r.POST("/detect/", h.detect)
	r.GET("/summary", h.getSummary)
	r.GET("/status", h.getStatus)
	r.GET("/detections/log", h.getLogs)
	r.GET("/export", h.exportLogs)
}

func (h *Handler) registerMuteRoutes(r *gin.Engine) {
	mute := r.Group("/mute")
	{
		mute.POST("/", h.mute)
		mute.GET("/status", h.muteStatus)
	}
}

func (h *Handler) registerDashboard(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(h.staticDir, dashboardFile))
	})
	r.Static("/static", h.staticDir)
}
