package api

import (
	"net/http"

	"github.com/lkwall/portfolio-site/errs"
	"github.com/lkwall/portfolio-site/forms"
	"github.com/lkwall/portfolio-site/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	renderer  Renderer
	logger    zerolog.Logger
	validator *forms.Validator
	notifier  services.Notifier
}

func newContactHandler(renderer Renderer, notifier services.Notifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		renderer:  renderer.WithLogger(logger),
		logger:    logger,
		validator: forms.NewValidator(),
		notifier:  notifier,
	}
}

// showContactForm renders the contact form; after a successful submission
// the redirect carries msg_sent=1 and the page shows the confirmation.
func (h contactHandler) showContactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderContactForm(w, http.StatusOK, forms.ContactForm{}, nil,
			r.URL.Query().Get("msg_sent") != "")
	}
}

// submitContact validates a submission and hands it to the notifier.
// Nothing is persisted; a transport failure surfaces as a 500.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := forms.ParseContactForm(r)

		if fieldErrors := h.validator.Check(form); fieldErrors != nil {
			h.renderContactForm(w, http.StatusBadRequest, form, fieldErrors, false)
			return
		}

		if err := h.notifier.SendContactMessage(r.Context(), form.ToContactMessage()); err != nil {
			h.renderer.WriteError(w, errs.NewInternalErrorWithCause("failed to send contact message", err))
			return
		}

		http.Redirect(w, r, "/contact?msg_sent=1", http.StatusSeeOther)
	}
}

func (h contactHandler) renderContactForm(w http.ResponseWriter, status int, form forms.ContactForm, fieldErrors forms.FieldErrors, msgSent bool) {
	h.renderer.Render(w, status, "contact.html", map[string]any{
		"Title":   "Contact",
		"Status":  "contact",
		"Form":    form,
		"Errors":  fieldErrors,
		"MsgSent": msgSent,
	})
}
