package utils

// ErrorResponse is the JSON shape for all error replies.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
