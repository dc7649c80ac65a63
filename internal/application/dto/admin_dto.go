package dto

// RoleChangeRequest concede o retira un rol. Role acepta "ACCOUNTANT" o "ROLE_ACCOUNTANT".
type RoleChangeRequest struct {
	User      string `json:"user" validate:"required,email"`
	Role      string `json:"role" validate:"required,max=50"`
	Operation string `json:"operation" validate:"required,oneof=GRANT REMOVE"`
}

// AccessRequest bloquea o desbloquea una cuenta.
type AccessRequest struct {
	User      string `json:"user" validate:"required,email"`
	Operation string `json:"operation" validate:"required,oneof=LOCK UNLOCK"`
}
