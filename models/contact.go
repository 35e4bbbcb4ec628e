package models

// ContactMessage is a contact-form submission. It is validated, handed to
// the notifier, and discarded; nothing is persisted.
type ContactMessage struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"required"`
	Message string `validate:"required"`
}
