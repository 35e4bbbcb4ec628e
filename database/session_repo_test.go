package database_test

import (
	"testing"
	"time"

	"github.com/lkwall/portfolio-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_CreateAndFind(t *testing.T) {
	repo := setupDB(t).SessionRepo()

	session, err := repo.Create()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, models.SessionStatusGood, session.Status)
	assert.True(t, session.Valid(time.Now()))

	found, err := repo.FindByToken(session.Token)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, session.Token, found.Token)
	assert.Equal(t, models.SessionStatusGood, found.Status)
}

func TestSessionRepo_FindByToken_Unknown(t *testing.T) {
	repo := setupDB(t).SessionRepo()

	found, err := repo.FindByToken("no-such-token")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestSession_Valid(t *testing.T) {
	now := time.Now()

	expired := models.Session{
		Token:     "t",
		Status:    models.SessionStatusGood,
		ExpiresAt: now.Add(-time.Minute),
	}
	assert.False(t, expired.Valid(now))

	wrongStatus := models.Session{
		Token:     "t",
		Status:    "bad",
		ExpiresAt: now.Add(time.Hour),
	}
	assert.False(t, wrongStatus.Valid(now))
}
