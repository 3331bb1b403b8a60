package models

// ErrorResponse is the standard error envelope returned by every endpoint.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
