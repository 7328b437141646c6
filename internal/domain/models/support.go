package models

// DefaultSupportSubject is sent when the user leaves the subject empty.
const DefaultSupportSubject = "Support request"

// SupportRequest is a message for the support team.
type SupportRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ApiResponse is the generic success/message envelope.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
