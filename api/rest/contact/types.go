package contact

// ContactRequest carries a contact form submission. Website is a honeypot
// field: humans never see it, bots fill it in.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required,max=5000"`
	Website string `json:"website"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
