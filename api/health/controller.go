package health

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"store/config"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// CheckFunc probes one dependency, such as the database or Redis.
type CheckFunc func(ctx context.Context) error

type Controller struct {
	config    *config.Config
	checks    map[string]CheckFunc
	startTime time.Time
}

// NewController takes the dependency probes by name; nil means none.
func NewController(cfg *config.Config, checks map[string]CheckFunc) *Controller {
	return &Controller{
		config:    cfg,
		checks:    checks,
		startTime: time.Now(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Liveness)
	router.GET("/health/ready", c.Readiness)
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
}

// Health runs every probe and reports 503 when any fails.
func (c *Controller) Health(ctx *gin.Context) {
	checks, healthy := c.runChecks(ctx.Request.Context())
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	resp := HealthResponse{
		Status:    status,
		Version:   c.config.App.Version,
		Uptime:    time.Since(c.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	// System details only in development.
	if c.config.IsDevelopment() {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		resp.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     memStats.Alloc,
		}
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, resp)
}

func (c *Controller) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) Readiness(ctx *gin.Context) {
	checks, healthy := c.runChecks(ctx.Request.Context())
	if !healthy {
		failing := make([]string, 0, len(checks))
		for name, check := range checks {
			if check.Status != "healthy" {
				failing = append(failing, name)
			}
		}
		sort.Strings(failing)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"failing": failing,
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (c *Controller) runChecks(ctx context.Context) (map[string]Check, bool) {
	results := make(map[string]Check, len(c.checks))
	healthy := true
	for name, probe := range c.checks {
		probeCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		start := time.Now()
		err := probe(probeCtx)
		cancel()

		check := Check{Status: "healthy", Latency: time.Since(start).String()}
		if err != nil {
			check.Status = "unhealthy"
			check.Message = err.Error()
			healthy = false
		}
		results[name] = check
	}
	return results, healthy
}
