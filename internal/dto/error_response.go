package dto

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}
