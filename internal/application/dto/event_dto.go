package dto

import "time"

// EventResponse un evento del log de seguridad.
type EventResponse struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Action  string    `json:"action"`
	Subject string    `json:"subject"`
	Object  string    `json:"object"`
	Path    string    `json:"path"`
}
