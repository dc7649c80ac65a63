// Package metrics contadores Prometheus de decisiones de seguridad.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/Account-api/internal/application/security"
)

var _ security.Metrics = (*SecurityMetrics)(nil)

const namespace = "account_api"

// SecurityMetrics implementa security.Metrics.
type SecurityMetrics struct {
	loginFailed   prometheus.Counter
	accountLocked prometheus.Counter
	lockRefused   prometheus.Counter
	accessDenied  prometheus.Counter
}

// NewSecurityMetrics registra los contadores en reg.
func NewSecurityMetrics(reg prometheus.Registerer) *SecurityMetrics {
	f := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "security", Name: name, Help: help})
	}
	return &SecurityMetrics{
		loginFailed:   counter("login_failed_total", "Intentos de autenticación fallidos."),
		accountLocked: counter("account_locked_total", "Cuentas bloqueadas por intentos fallidos."),
		lockRefused:   counter("admin_lock_refused_total", "Bloqueos automáticos rechazados sobre administradores."),
		accessDenied:  counter("access_denied_total", "Peticiones denegadas por falta de rol."),
	}
}

func (m *SecurityMetrics) LoginFailed()   { m.loginFailed.Inc() }
func (m *SecurityMetrics) AccountLocked() { m.accountLocked.Inc() }
func (m *SecurityMetrics) LockRefused()   { m.lockRefused.Inc() }
func (m *SecurityMetrics) AccessDenied()  { m.accessDenied.Inc() }
