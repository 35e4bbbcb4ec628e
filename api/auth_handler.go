package api

import (
	"fmt"
	"net/http"

	"github.com/lkwall/portfolio-site/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const wrongPasswordWarning = "wrong password! try again..."

type authHandler struct {
	renderer     Renderer
	logger       zerolog.Logger
	sessionRepo  *database.SessionRepo
	passwordHash []byte
	secret       []byte
}

// newAuthHandler hashes the configured site password once at startup so
// the process never holds or compares the plaintext afterwards.
func newAuthHandler(renderer Renderer, sessionRepo *database.SessionRepo, sitePassword, secret string) (authHandler, error) {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(sitePassword), bcrypt.DefaultCost)
	if err != nil {
		return authHandler{}, fmt.Errorf("failed to hash site password: %w", err)
	}

	return authHandler{
		renderer:     renderer.WithLogger(logger),
		logger:       logger,
		sessionRepo:  sessionRepo,
		passwordHash: passwordHash,
		secret:       []byte(secret),
	}, nil
}

// showLogin renders the password challenge. After a failed attempt the
// redirect carries failed=1 and the form shows the warning.
func (h authHandler) showLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var warning string
		if r.URL.Query().Get("failed") != "" {
			warning = wrongPasswordWarning
		}

		h.renderer.Render(w, http.StatusOK, "login.html", map[string]any{
			"Title":   "Log In",
			"Status":  "login",
			"Warning": warning,
		})
	}
}

// handleLogin compares the submitted password against the startup hash.
// On a match it creates a "good" session row, sets the signed cookie, and
// redirects to the projects listing; on a mismatch it redirects back to
// the login form with the warning and no session exists.
func (h authHandler) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := r.PostFormValue("password")

		if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(password)); err != nil {
			h.logger.Warn().Msg("failed login attempt")
			http.Redirect(w, r, "/login?failed=1", http.StatusSeeOther)
			return
		}

		session, err := h.sessionRepo.Create()
		if err != nil {
			h.renderer.WriteError(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    signSessionCookie(h.secret, session.Token),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, "/projects", http.StatusSeeOther)
	}
}
