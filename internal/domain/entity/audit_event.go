package entity

import "time"

// AuditAction nombre de la acción registrada en el log de seguridad.
type AuditAction string

const (
	ActionCreateUser     AuditAction = "CREATE_USER"
	ActionChangePassword AuditAction = "CHANGE_PASSWORD"
	ActionGrantRole      AuditAction = "GRANT_ROLE"
	ActionRemoveRole     AuditAction = "REMOVE_ROLE"
	ActionLockUser       AuditAction = "LOCK_USER"
	ActionUnlockUser     AuditAction = "UNLOCK_USER"
	ActionDeleteUser     AuditAction = "DELETE_USER"
	ActionLoginFailed    AuditAction = "LOGIN_FAILED"
	ActionBruteForce     AuditAction = "BRUTE_FORCE"
	ActionAccessDenied   AuditAction = "ACCESS_DENIED"
)

// SubjectAnonymous sujeto de eventos sin usuario autenticado.
const SubjectAnonymous = "Anonymous"

// AuditEvent registro inmutable de una acción de seguridad.
// ID y Date los asigna el almacenamiento al insertar; el orden de ID es el orden de inserción.
type AuditEvent struct {
	ID      int64
	Date    time.Time
	Action  AuditAction
	Subject string // email en minúsculas o "Anonymous"
	Object  string
	Path    string
}
