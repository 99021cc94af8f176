package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "vastra"

// Metrics 服务指标集合，使用独立 Registry，方法对 nil 接收者安全
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	latencyMS *prometheus.HistogramVec

	ordersPlaced   prometheus.Counter
	orderFailures  *prometheus.CounterVec
	stockConflicts prometheus.Counter
	statusChanges  *prometheus.CounterVec
	outboxEvents   *prometheus.CounterVec
}

// New 创建并注册指标
func New(namespace string) *Metrics {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = defaultNamespace
	}
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		latencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "route"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders committed successfully.",
		}),
		orderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_failures_total",
			Help:      "Order placements rejected, by reason.",
		}, []string{"reason"}),
		stockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_conflicts_total",
			Help:      "Conditional stock decrements that lost a race.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Order status transitions, by target status.",
		}, []string{"kind", "status"}),
		outboxEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_total",
			Help:      "Outbox relay results.",
		}, []string{"result"}),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latencyMS,
		m.ordersPlaced,
		m.orderFailures,
		m.stockConflicts,
		m.statusChanges,
		m.outboxEvents,
	)
	return m
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware 记录请求数与耗时，路由使用模板路径避免高基数
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latencyMS.WithLabelValues(method, route).Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
}

// OrderPlaced 下单成功
func (m *Metrics) OrderPlaced() {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// OrderFailed 下单失败
func (m *Metrics) OrderFailed(reason string) {
	if m == nil {
		return
	}
	m.orderFailures.WithLabelValues(reason).Inc()
}

// StockConflict 条件扣减库存失败
func (m *Metrics) StockConflict() {
	if m == nil {
		return
	}
	m.stockConflicts.Inc()
}

// StatusChanged 订单状态变更
func (m *Metrics) StatusChanged(kind, status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(kind, status).Inc()
}

// OutboxRelayed 发件箱投递结果
func (m *Metrics) OutboxRelayed(result string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.outboxEvents.WithLabelValues(result).Add(float64(count))
}
