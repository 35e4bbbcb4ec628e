// Package forms decodes and validates the site's HTML form submissions
// before any handler touches the database.
package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lkwall/portfolio-site/models"
)

// FieldErrors maps a form field's struct name to the message rendered next
// to it when the form is redisplayed.
type FieldErrors map[string]string

// ProjectForm carries one add/edit submission. Every field is resubmitted
// on edit, so a valid form fully describes the row it becomes.
type ProjectForm struct {
	Title        string `validate:"required"`
	Subtitle     string
	Category     string `validate:"required,oneof='Data Analysis' 'Web Design & Development' 'Game Design' 'Other'"`
	DateFinished string `validate:"required"`
	Description  string `validate:"required"`
	Goal         string
	Methods      string
	Challenges   string
	Tools        string
	Sources      string
	Improvements string
	Tags         string
	ImgURL       string `validate:"required,url"`
	ImgAltText   string
	GithubURL    string `validate:"required,url"`
}

// ContactForm carries one contact submission.
type ContactForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"required"`
	Message string `validate:"required"`
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Check validates any form struct and translates validator errors into
// per-field messages for the re-rendered form. A nil map means the form is
// valid.
func (v *Validator) Check(form any) FieldErrors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"Form": "Invalid submission."}
	}

	fieldErrors := make(FieldErrors, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors[e.Field()] = messageFor(e.Tag())
	}
	return fieldErrors
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "oneof":
		return "Not a valid choice."
	case "url":
		return "Invalid URL."
	case "email":
		return "Invalid email address."
	default:
		return "Invalid value."
	}
}

// ParseProjectForm reads a project submission from the request body.
func ParseProjectForm(r *http.Request) ProjectForm {
	return ProjectForm{
		Title:        field(r, "title"),
		Subtitle:     field(r, "subtitle"),
		Category:     field(r, "category"),
		DateFinished: field(r, "date_finished"),
		Description:  field(r, "description"),
		Goal:         field(r, "goal"),
		Methods:      field(r, "methods"),
		Challenges:   field(r, "challenges"),
		Tools:        field(r, "tools"),
		Sources:      field(r, "sources"),
		Improvements: field(r, "improvements"),
		Tags:         field(r, "tags"),
		ImgURL:       field(r, "img_url"),
		ImgAltText:   field(r, "img_alt_text"),
		GithubURL:    field(r, "github_url"),
	}
}

// ParseContactForm reads a contact submission from the request body.
func ParseContactForm(r *http.Request) ContactForm {
	return ContactForm{
		Name:    field(r, "name"),
		Email:   field(r, "email"),
		Phone:   field(r, "phone"),
		Message: field(r, "message"),
	}
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

// ToProject converts a validated form into the row it describes. The id is
// zero for a create and the existing primary key for an edit.
func (f ProjectForm) ToProject(id uint) models.Project {
	return models.Project{
		ID:           id,
		Title:        f.Title,
		Subtitle:     optional(f.Subtitle),
		Category:     f.Category,
		DateFinished: f.DateFinished,
		Description:  f.Description,
		Goal:         optional(f.Goal),
		Methods:      optional(f.Methods),
		Challenges:   optional(f.Challenges),
		Tools:        optional(f.Tools),
		Sources:      optional(f.Sources),
		Improvements: optional(f.Improvements),
		Tags:         optional(f.Tags),
		ImgURL:       f.ImgURL,
		ImgAltText:   optional(f.ImgAltText),
		GithubURL:    f.GithubURL,
	}
}

// ToContactMessage converts a validated contact form into its message.
func (f ContactForm) ToContactMessage() models.ContactMessage {
	return models.ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	}
}

// ProjectFormFrom prefills the edit form from an existing row.
func ProjectFormFrom(p models.Project) ProjectForm {
	return ProjectForm{
		Title:        p.Title,
		Subtitle:     deref(p.Subtitle),
		Category:     p.Category,
		DateFinished: p.DateFinished,
		Description:  p.Description,
		Goal:         deref(p.Goal),
		Methods:      deref(p.Methods),
		Challenges:   deref(p.Challenges),
		Tools:        deref(p.Tools),
		Sources:      deref(p.Sources),
		Improvements: deref(p.Improvements),
		Tags:         deref(p.Tags),
		ImgURL:       p.ImgURL,
		ImgAltText:   deref(p.ImgAltText),
		GithubURL:    p.GithubURL,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
