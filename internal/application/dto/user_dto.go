package dto

// SignUpRequest entrada de registro. El email debe ser corporativo (@acme.com).
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Lastname string `json:"lastname" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,acme_email"`
	Password string `json:"password" validate:"required,min=12"`
}

// UserResponse salida de un usuario (sin password). Roles ordenados ignorando ROLE_.
type UserResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Lastname string   `json:"lastname"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangePasswordRequest nueva contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=12"`
}
