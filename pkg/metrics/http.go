package metrics

// Gin instrumentation loosely after github.com/zsais/go-gin-prometheus,
// trimmed to the collectors this service actually watches.

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var durationBucketsMs = []float64{
	10, 25, 50, 100, 250, 500,
	1000, 2500, 5000, 10000, 30000,
}

type Logger interface {
	Errorf(format string, v ...interface{})
}

// RouteLabelFn controls the cardinality of the "route" label. The default
// uses gin's matched route template so /payments/abc and /payments/def share
// one series.
type RouteLabelFn func(c *gin.Context) string

type HTTPOptions struct {
	Subsystem   string
	MetricsPath string
	RouteLabel  RouteLabelFn
	Logger      Logger
}

// HTTP gathers request count, latency and response size per route and can
// serve /metrics either inline or on a dedicated listener.
type HTTP struct {
	reqCnt *prometheus.CounterVec
	reqDur *prometheus.HistogramVec
	resSz  *prometheus.SummaryVec

	metricsPath   string
	routeLabel    RouteLabelFn
	listenAddress string
	logger        Logger
}

func NewHTTP(options HTTPOptions) *HTTP {
	path := options.MetricsPath
	if path == "" {
		path = "/metrics"
	}
	routeLabel := options.RouteLabel
	if routeLabel == nil {
		routeLabel = func(c *gin.Context) string {
			if fp := c.FullPath(); fp != "" {
				return fp
			}
			return c.Request.URL.Path
		}
	}

	h := &HTTP{
		reqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: options.Subsystem,
			Name:      "req_total",
			Help:      "HTTP requests processed, partitioned by status code, method and route.",
		}, []string{"code", "method", "route"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: options.Subsystem,
			Name:      "req_dur_ms",
			Help:      "HTTP request latencies in milliseconds.",
			Buckets:   durationBucketsMs,
		}, []string{"code", "method", "route"}),
		resSz: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Subsystem: options.Subsystem,
			Name:      "resp_sz_bytes",
			Help:      "HTTP response sizes in bytes.",
		}, []string{"code", "method", "route"}),
		metricsPath: path,
		routeLabel:  routeLabel,
		logger:      options.Logger,
	}

	for _, c := range []prometheus.Collector{h.reqCnt, h.reqDur, h.resSz} {
		if err := prometheus.Register(c); err != nil && h.logger != nil {
			h.logger.Errorf("prometheus register failed: %v", err)
		}
	}
	return h
}

// SetListenAddress moves the /metrics endpoint to its own listener so scrapes
// stay out of the API's access log.
func (h *HTTP) SetListenAddress(address string) {
	h.listenAddress = address
}

// Use attaches the middleware to e and exposes the metrics endpoint.
func (h *HTTP) Use(e *gin.Engine) {
	e.Use(h.HandlerFunc())
	if h.listenAddress != "" {
		side := gin.New()
		side.GET(h.metricsPath, gin.WrapH(promhttp.Handler()))
		go func() {
			if err := side.Run(h.listenAddress); err != nil && h.logger != nil {
				h.logger.Errorf("metrics listener: %v", err)
			}
		}()
		return
	}
	e.GET(h.metricsPath, gin.WrapH(promhttp.Handler()))
}

func (h *HTTP) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == h.metricsPath {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		code := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		route := h.routeLabel(c)
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)

		h.reqCnt.WithLabelValues(code, method, route).Inc()
		h.reqDur.WithLabelValues(code, method, route).Observe(elapsed)
		h.resSz.WithLabelValues(code, method, route).Observe(float64(c.Writer.Size()))
	}
}
