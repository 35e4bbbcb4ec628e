package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lkwall/portfolio-site/database"
	"github.com/lkwall/portfolio-site/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// aboutChunkToken separates paragraphs in the about file.
const aboutChunkToken = "CHUNK"

type siteHandler struct {
	renderer    Renderer
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	aboutPath   string
	resumePath  string
}

func newSiteHandler(renderer Renderer, projectRepo *database.ProjectRepo, aboutPath, resumePath string) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		renderer:    renderer.WithLogger(logger),
		logger:      logger,
		projectRepo: projectRepo,
		aboutPath:   aboutPath,
		resumePath:  resumePath,
	}
}

// home renders the landing page: the about paragraphs plus every project.
func (h siteHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.renderer.WriteError(w, errs.NewDatabaseError("find", "projects", err))
			return
		}

		h.renderer.Render(w, http.StatusOK, "index.html", map[string]any{
			"Title":     "Home",
			"Status":    "home",
			"AboutText": h.aboutParagraphs(),
			"Projects":  projects,
		})
	}
}

// about renders the narrative text standalone.
func (h siteHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "about.html", map[string]any{
			"Title":     "About",
			"Status":    "about",
			"AboutText": h.aboutParagraphs(),
		})
	}
}

// resume renders the resume page.
func (h siteHandler) resume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "resume.html", map[string]any{
			"Title":  "Resume",
			"Status": "resume",
		})
	}
}

// download serves the resume PDF as an attachment.
func (h siteHandler) download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(h.resumePath); err != nil {
			h.renderer.WriteError(w, errs.NewNotFound("resume"))
			return
		}

		w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(h.resumePath)+`"`)
		http.ServeFile(w, r, h.resumePath)
	}
}

// aboutParagraphs reads the about file and splits it on the CHUNK token.
// Display copy is not worth failing a page over, so a missing file just
// logs and renders without it.
func (h siteHandler) aboutParagraphs() []string {
	raw, err := os.ReadFile(h.aboutPath)
	if err != nil {
		h.logger.Warn().Err(err).Str("path", h.aboutPath).Msg("could not read about file")
		return nil
	}

	var paragraphs []string
	for _, chunk := range strings.Split(string(raw), aboutChunkToken) {
		if chunk = strings.TrimSpace(chunk); chunk != "" {
			paragraphs = append(paragraphs, chunk)
		}
	}
	return paragraphs
}
