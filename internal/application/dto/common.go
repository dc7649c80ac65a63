package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// StatusResponse confirmación de una operación sin cuerpo propio.
type StatusResponse struct {
	User   string `json:"user,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status"`
}
