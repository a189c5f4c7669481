package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SessionsLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillforge_sessions_logged_total",
		Help: "Practice sessions successfully logged",
	})

	XPAwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillforge_xp_awarded_total",
		Help: "Total XP awarded from logged sessions",
	})

	LevelUps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillforge_level_ups_total",
		Help: "Sessions that moved a skill to a higher level",
	})

	SkillsChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillforge_skills_changed_total",
			Help: "Skills created or deleted",
		},
		[]string{"op"},
	)
)

var registerOnce sync.Once

// Init 注册全部指标，可重复调用
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, SessionsLogged, XPAwarded, LevelUps, SkillsChanged)
	})
}

// RecordSession 记录一次成功的练习日志
func RecordSession(minutes int, leveledUp bool) {
	SessionsLogged.Inc()
	XPAwarded.Add(float64(minutes))
	if leveledUp {
		LevelUps.Inc()
	}
}

func RecordSkillCreated() {
	SkillsChanged.WithLabelValues("create").Inc()
}

func RecordSkillDeleted() {
	SkillsChanged.WithLabelValues("delete").Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
