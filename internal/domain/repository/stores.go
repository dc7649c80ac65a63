package repository

// Stores agrupa los repositorios atados a una misma unidad de trabajo
// (pool o transacción).
type Stores struct {
	Accounts AccountRepository
	Roles    RoleRepository
	Events   AuditEventRepository
}
