package api

import (
	"github.com/lkwall/portfolio-site/config"
	"github.com/lkwall/portfolio-site/database"
	"github.com/lkwall/portfolio-site/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	siteHandler    siteHandler
	projectHandler projectHandler
	contactHandler contactHandler
	authHandler    authHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, notifier services.Notifier, renderer Renderer, c map[string]string) (*routeHandlers, error) {
	sitePassword := config.GetString(c, "SITE_PASSWORD", "")
	appSecret := config.GetString(c, "APP_SECRET", "")
	aboutPath := config.GetString(c, "ABOUT_PATH", "static/about.txt")
	resumePath := config.GetString(c, "RESUME_PATH", "static/files/resume.pdf")

	authHandler, err := newAuthHandler(renderer, database.SessionRepo(), sitePassword, appSecret)
	if err != nil {
		return nil, err
	}

	return &routeHandlers{
		siteHandler:    newSiteHandler(renderer, database.ProjectRepo(), aboutPath, resumePath),
		projectHandler: newProjectHandler(renderer, database.ProjectRepo()),
		contactHandler: newContactHandler(renderer, notifier),
		authHandler:    authHandler,
	}, nil
}
