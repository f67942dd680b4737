// Package metrics expone las métricas Prometheus del servicio.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa contadores de registro/login y la latencia HTTP.
// Implementa auth.Recorder.
type Metrics struct {
	Registrations    *prometheus.CounterVec
	RegistrationsRej *prometheus.CounterVec
	Logins           *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// New crea y registra las métricas en reg (prometheus.DefaultRegisterer en producción,
// un registry nuevo en cada test).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vetcare_registrations_total",
			Help: "Cuentas creadas, por tipo de perfil",
		}, []string{"type"}),
		RegistrationsRej: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vetcare_registrations_rejected_total",
			Help: "Registros rechazados, por motivo",
		}, []string{"kind"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vetcare_logins_total",
			Help: "Intentos de login, por resultado",
		}, []string{"success"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vetcare_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// IncRegistration registra una cuenta creada.
func (m *Metrics) IncRegistration(roleType string) {
	m.Registrations.WithLabelValues(roleType).Inc()
}

// IncRegistrationRejected registra un registro rechazado (VALIDATION, DUPLICATE).
func (m *Metrics) IncRegistrationRejected(kind string) {
	m.RegistrationsRej.WithLabelValues(kind).Inc()
}

// IncLogin registra un intento de login.
func (m *Metrics) IncLogin(success bool) {
	m.Logins.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// ObserveRequest registra la duración de una petición. Llamar con time.Now() tomado al inicio.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
