package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lkwall/portfolio-site/models"
	"gorm.io/gorm"
)

// sessionLifetime bounds how long a login stays usable. The site has no
// logout, so stale rows have to expire somehow.
const sessionLifetime = 24 * time.Hour

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db}
}

// Create inserts a new session row with the "good" status and returns it.
func (r *SessionRepo) Create() (*models.Session, error) {
	now := time.Now()
	session := models.Session{
		Token:     uuid.NewString(),
		Status:    models.SessionStatusGood,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionLifetime),
	}
	if err := r.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByToken returns the session for a token, or nil when no row matches.
func (r *SessionRepo) FindByToken(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
