package contact

import "time"

// ContactForm is what the storefront's contact page posts, urlencoded.
type ContactForm struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Phone   string `form:"phone" json:"phone"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
}

type ContactMessage struct {
	UID       string      `json:"id"`
	Form      ContactForm `json:"form"`
	CreatedAt time.Time   `json:"created_at"`
}
