package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// SuccessResponse acknowledges a command that returns no data.
type SuccessResponse struct {
	Success bool `json:"success"`
}
