package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const readyPingTimeout = 2 * time.Second

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  int64  `json:"uptime"`
}

// DBStatus describes the database as seen by the readiness probe.
type DBStatus struct {
	Status          string `json:"status"`
	Driver          string `json:"driver,omitempty"`
	OpenConnections int    `json:"openConnections"`
	InUse           int    `json:"inUse"`
	Error           string `json:"error,omitempty"`
}

// ReadyResponse is returned by the readiness probe.
type ReadyResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	Uptime  int64    `json:"uptime"`
	DB      DBStatus `json:"db"`
}

type HealthHandler struct {
	db      *gorm.DB
	started time.Time
	version string
}

func NewHealthHandler(db *gorm.DB, started time.Time, version string) *HealthHandler {
	return &HealthHandler{db: db, started: started, version: version}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health godoc
// @Summary      Liveness probe
// @Tags         ops
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  h.uptime(),
	})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Reports whether the database answers a ping
// @Tags         ops
// @Produce      json
// @Success      200  {object}  ReadyResponse
// @Failure      503  {object}  ReadyResponse
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	resp := ReadyResponse{
		Status:  "ready",
		Version: h.version,
		Uptime:  h.uptime(),
		DB:      DBStatus{Status: "up", Driver: h.db.Dialector.Name()},
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		_ = c.Error(err)
		resp.Status = "unhealthy"
		resp.DB.Status = "unknown"
		resp.DB.Error = "failed to get underlying DB"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readyPingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = c.Error(err)
		resp.Status = "unhealthy"
		resp.DB.Status = "down"
		resp.DB.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	stats := sqlDB.Stats()
	resp.DB.OpenConnections = stats.OpenConnections
	resp.DB.InUse = stats.InUse

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) uptime() int64 {
	return int64(time.Since(h.started).Seconds())
}
