package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lkwall/portfolio-site/database"
	"github.com/lkwall/portfolio-site/errs"
	"github.com/lkwall/portfolio-site/forms"
	"github.com/lkwall/portfolio-site/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	renderer    Renderer
	logger      zerolog.Logger
	validator   *forms.Validator
	projectRepo *database.ProjectRepo
}

func newProjectHandler(renderer Renderer, projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		renderer:    renderer.WithLogger(logger),
		logger:      logger,
		validator:   forms.NewValidator(),
		projectRepo: projectRepo,
	}
}

// listProjects renders the full project list in primary-key order.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.renderer.WriteError(w, errs.NewDatabaseError("find", "projects", err))
			return
		}

		h.renderer.Render(w, http.StatusOK, "projects.html", map[string]any{
			"Title":    "Projects",
			"Status":   "projects",
			"Projects": projects,
		})
	}
}

// showProject renders a single project's detail page, 404 when the id has
// no row.
func (h projectHandler) showProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, apiErr := h.loadProject(r)
		if apiErr != nil {
			h.renderer.WriteError(w, apiErr)
			return
		}

		h.renderer.Render(w, http.StatusOK, "project.html", map[string]any{
			"Title":   project.Title,
			"Status":  "projects",
			"Project": project,
		})
	}
}

// newProjectForm renders the empty add-project form.
func (h projectHandler) newProjectForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderProjectForm(w, http.StatusOK, forms.ProjectForm{}, nil, false)
	}
}

// createProject validates a submitted project form and inserts the new
// row, redirecting to its detail page. On any validation failure the form
// is re-rendered with inline errors and nothing is written.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := forms.ParseProjectForm(r)

		fieldErrors := h.validator.Check(form)
		if fieldErrors == nil {
			fieldErrors = h.checkTitleUnique(form.Title, 0)
		}
		if fieldErrors != nil {
			h.renderProjectForm(w, http.StatusBadRequest, form, fieldErrors, false)
			return
		}

		project := form.ToProject(0)
		if err := h.projectRepo.Add(&project); err != nil {
			dbErr := errs.NewDatabaseError("create", "project", err)
			if errs.IsConflict(dbErr) {
				// Unique-constraint backstop for a create racing the
				// pre-check.
				h.renderProjectForm(w, http.StatusBadRequest, form,
					forms.FieldErrors{"Title": "A project with this title already exists."}, false)
				return
			}
			h.renderer.WriteError(w, dbErr)
			return
		}

		http.Redirect(w, r, projectPath(project.ID), http.StatusSeeOther)
	}
}

// editProjectForm renders the edit form prefilled from the existing row.
func (h projectHandler) editProjectForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, apiErr := h.loadProject(r)
		if apiErr != nil {
			h.renderer.WriteError(w, apiErr)
			return
		}

		h.renderProjectForm(w, http.StatusOK, forms.ProjectFormFrom(*project), nil, true)
	}
}

// updateProject overwrites every field of an existing row from a validated
// resubmission. There is no partial update: the form carries the full
// record and the row is saved as a single commit, last writer winning.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, apiErr := h.loadProject(r)
		if apiErr != nil {
			h.renderer.WriteError(w, apiErr)
			return
		}

		form := forms.ParseProjectForm(r)

		fieldErrors := h.validator.Check(form)
		if fieldErrors == nil {
			fieldErrors = h.checkTitleUnique(form.Title, existing.ID)
		}
		if fieldErrors != nil {
			h.renderProjectForm(w, http.StatusBadRequest, form, fieldErrors, true)
			return
		}

		project := form.ToProject(existing.ID)
		if err := h.projectRepo.Update(&project); err != nil {
			h.renderer.WriteError(w, errs.NewDatabaseError("update", "project", err))
			return
		}

		http.Redirect(w, r, projectPath(project.ID), http.StatusSeeOther)
	}
}

// loadProject resolves the {projectID} route param to a row. A non-numeric
// id or a missing row both surface as not-found.
func (h projectHandler) loadProject(r *http.Request) (*models.Project, *errs.ApiErr) {
	idStr := chi.URLParam(r, "projectID")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, errs.NewNotFound("project")
	}

	project, err := h.projectRepo.FindByID(uint(id))
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	return project, nil
}

// checkTitleUnique surfaces a duplicate title as a form error instead of a
// constraint violation, excluding the row being edited.
func (h projectHandler) checkTitleUnique(title string, excludeID uint) forms.FieldErrors {
	taken, err := h.projectRepo.TitleExists(title, excludeID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to check title uniqueness")
		return nil
	}
	if taken {
		return forms.FieldErrors{"Title": "A project with this title already exists."}
	}
	return nil
}

func (h projectHandler) renderProjectForm(w http.ResponseWriter, status int, form forms.ProjectForm, fieldErrors forms.FieldErrors, isEdit bool) {
	title := "Add Project"
	if isEdit {
		title = "Edit Project"
	}

	h.renderer.Render(w, status, "project_form.html", map[string]any{
		"Title":      title,
		"Status":     "projects",
		"Form":       form,
		"Errors":     fieldErrors,
		"Categories": models.ProjectCategories,
		"IsEdit":     isEdit,
	})
}

func projectPath(id uint) string {
	return "/project-" + strconv.FormatUint(uint64(id), 10)
}
