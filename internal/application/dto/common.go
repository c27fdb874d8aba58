package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"` // one actionable entry per violated rule
}
