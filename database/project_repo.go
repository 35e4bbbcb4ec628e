package database

import (
	"errors"

	"github.com/lkwall/portfolio-site/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects ordered by primary key, the insertion order
// the listing pages display.
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("id").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when no row matches.
func (r *ProjectRepo) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// TitleExists reports whether a project with the given title already exists,
// excluding the row with excludeID (zero means exclude nothing).
func (r *ProjectRepo) TitleExists(title string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("title = ? AND id <> ?", title, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Count returns the number of project rows.
func (r *ProjectRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update overwrites every column of an existing project in a single commit.
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}
