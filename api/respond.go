package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/lkwall/portfolio-site/errs"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer writes HTML pages from the embedded template set. Every handler
// holds one with its own child logger.
type Renderer struct {
	logger    zerolog.Logger
	templates *template.Template
}

func NewRenderer(logger zerolog.Logger) (Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return Renderer{}, fmt.Errorf("failed to parse templates: %w", err)
	}
	return Renderer{logger: logger, templates: templates}, nil
}

// WithLogger returns a copy of the renderer bound to another logger,
// sharing the parsed template set.
func (r Renderer) WithLogger(logger zerolog.Logger) Renderer {
	return Renderer{logger: logger, templates: r.templates}
}

// Render executes one page template into a buffer first, so a template
// error never leaks a half-written page to the client.
func (r Renderer) Render(w http.ResponseWriter, status int, page string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["CurrentYear"]; !ok {
		data["CurrentYear"] = strconv.Itoa(time.Now().Year())
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, page, data); err != nil {
		r.logger.Error().Err(err).Str("template", page).Msg("error rendering template")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps an error to its page. Expected errors carry their own
// status; anything else is logged and surfaced as a generic 500.
func (r Renderer) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.Render(w, http.StatusInternalServerError, "error.html", map[string]any{
			"Title":   "Something went wrong",
			"Message": "An unexpected error occurred.",
		})
		return
	}

	if apiErr.Cause != nil {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	}

	title := http.StatusText(apiErr.StatusCode)
	r.Render(w, apiErr.StatusCode, "error.html", map[string]any{
		"Title":   title,
		"Message": apiErr.Error(),
	})
}
