package dto

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactResponse carries the chat link prefilled with the message
type ContactResponse struct {
	ID      string `json:"id"`
	ChatURL string `json:"chat_url"`
}

type NewsletterRequest struct {
	Email string `json:"email"`
}

type NewsletterResponse struct {
	Email      string `json:"email"`
	Subscribed bool   `json:"subscribed"`
}
