package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the sandbox counters. Each instance registers on its own
// registerer so tests can build as many as they like.
type Metrics struct {
	requests        *prometheus.CounterVec
	bookingsCreated prometheus.Counter
	supportTickets  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bdvail_sandbox",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "path", "status"},
		),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bdvail_sandbox",
			Name:      "bookings_created_total",
			Help:      "Bookings stored by the sandbox.",
		}),
		supportTickets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bdvail_sandbox",
			Name:      "support_tickets_total",
			Help:      "Support tickets stored by the sandbox.",
		}),
	}
	reg.MustRegister(m.requests, m.bookingsCreated, m.supportTickets)
	return m
}

// Middleware counts every request under its route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *Metrics) IncBookingCreated() {
	if m != nil {
		m.bookingsCreated.Inc()
	}
}

func (m *Metrics) IncSupportTicket() {
	if m != nil {
		m.supportTickets.Inc()
	}
}

// BookingsCreated exposes the counter for tests and dashboards.
func (m *Metrics) BookingsCreated() prometheus.Counter { return m.bookingsCreated }

func (m *Metrics) SupportTickets() prometheus.Counter { return m.supportTickets }
