// Package security reúne el núcleo de seguridad de cuentas: catálogo de roles,
// motor de control de acceso, seguimiento de bloqueos, log de auditoría y la
// pasarela de autenticación que los orquesta.
package security

import (
	"context"

	"github.com/jhoicas/Account-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con repositorios atados a ella.
// Si fn devuelve error no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(s repository.Stores) error) error
}

// CredentialHasher hashing unidireccional de contraseñas.
type CredentialHasher interface {
	Hash(plain string) (string, error)
	Matches(plain, digest string) bool
}

// Metrics contadores de decisiones de seguridad.
type Metrics interface {
	LoginFailed()
	AccountLocked()
	LockRefused()
	AccessDenied()
}

// Principal identidad autenticada devuelta por Verify.
type Principal struct {
	AccountID string
	Email     string
	Name      string
	Lastname  string
	Roles     []string
}

type nopMetrics struct{}

func (nopMetrics) LoginFailed()   {}
func (nopMetrics) AccountLocked() {}
func (nopMetrics) LockRefused()   {}
func (nopMetrics) AccessDenied()  {}

// NopMetrics implementación vacía para tests y arranques sin métricas.
func NopMetrics() Metrics { return nopMetrics{} }
