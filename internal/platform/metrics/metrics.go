package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas de la app sobre un registry propio
// (así cada router de test tiene el suyo sin colisiones de registro).
type Metrics struct {
	registry *prometheus.Registry

	ReportsIssued        prometheus.Counter
	Verifications        *prometheus.CounterVec
	ContactSubmissions   prometheus.Counter
	Logins               *prometheus.CounterVec
	RateLimited          *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	CertificateConflicts prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ReportsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "vetclinic_medical_reports_issued_total",
			Help: "Medical reports issued by admins (each one registers an animal and a certificate)",
		}),
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vetclinic_certificate_verifications_total",
			Help: "Public certificate lookups by outcome",
		}, []string{"outcome"}),
		ContactSubmissions: f.NewCounter(prometheus.CounterOpts{
			Name: "vetclinic_contact_submissions_total",
			Help: "Contact form submissions stored",
		}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vetclinic_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		RateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vetclinic_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by bucket",
		}, []string{"bucket"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vetclinic_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		CertificateConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "vetclinic_certificate_collisions_total",
			Help: "Generated certificate numbers that collided with an existing one",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) IncReportsIssued() {
	if m == nil {
		return
	}
	m.ReportsIssued.Inc()
}

func (m *Metrics) IncVerification(outcome string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncContactSubmissions() {
	if m == nil {
		return
	}
	m.ContactSubmissions.Inc()
}

func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRateLimited(bucket string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(bucket).Inc()
}

func (m *Metrics) IncCertificateConflicts() {
	if m == nil {
		return
	}
	m.CertificateConflicts.Inc()
}
