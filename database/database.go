package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo *ProjectRepo
	sessionRepo *SessionRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo: NewProjectRepo(db),
		sessionRepo: NewSessionRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SessionRepo() *SessionRepo {
	return d.sessionRepo
}
