package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound error = &kindError{msg: "usuario no encontrado", kind: ErrNotFound}
	ErrRoleNotFound error = &kindError{msg: "rol no encontrado", kind: ErrNotFound}
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// RBAC
	ErrAdminRoleRemoval error = &kindError{msg: "no se puede quitar el rol ADMINISTRATOR", kind: ErrForbidden}
	ErrRoleConflict       = errors.New("el usuario no puede combinar roles administrativos y de negocio")
	ErrInvalidOperation   = errors.New("el usuario no tiene el rol")
	ErrInvariantViolation = errors.New("el usuario debe tener al menos un rol")

	// Bloqueo de cuentas
	ErrAdminCannotBeLocked = errors.New("la cuenta de administrador no puede bloquearse")

	// Autenticación: mensaje uniforme, nunca revela si el email existe.
	ErrAuthenticationFailed = errors.New("credenciales inválidas")

	// Política de contraseñas
	ErrPasswordTooShort = errors.New("la contraseña debe tener al menos 12 caracteres")
	ErrBreachedPassword = errors.New("la contraseña está en la lista de contraseñas filtradas")
	ErrPasswordReused   = errors.New("la nueva contraseña debe ser distinta de la actual")
)

// kindError es un sentinel que además satisface errors.Is contra su familia
// (ErrUserNotFound y ErrRoleNotFound son ErrNotFound; ErrAdminRoleRemoval es ErrForbidden).
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string        { return e.msg }
func (e *kindError) Is(target error) bool { return target == e.kind }

// OpError adjunta a un error de dominio la operación y el endpoint que lo originó.
// errors.Is sigue encontrando el sentinel envuelto.
type OpError struct {
	Op   string // ej. "changeUserRole"
	Path string // ej. "/api/admin/user/role"
	Err  error
}

// NewOpError envuelve err con contexto de operación; nil si err es nil.
func NewOpError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Path: path, Err: err}
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

// PathOf devuelve el endpoint registrado en la cadena de errores, si existe.
func PathOf(err error) string {
	var op *OpError
	if errors.As(err, &op) {
		return op.Path
	}
	return ""
}
