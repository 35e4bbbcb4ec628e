package database_test

import (
	"fmt"
	"testing"

	"github.com/lkwall/portfolio-site/database"
	"github.com/lkwall/portfolio-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an in-memory SQLite database unique to the test.
func setupDB(t *testing.T) database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.Session{}))

	return database.New(db)
}

func strPtr(s string) *string {
	return &s
}

func sampleProject(title string) models.Project {
	return models.Project{
		Title:        title,
		Subtitle:     strPtr("a subtitle"),
		Category:     "Data Analysis",
		DateFinished: "03-2025",
		Description:  "A longer description of the work.",
		Goal:         strPtr("learn things"),
		Methods:      strPtr("pandas"),
		Challenges:   strPtr("messy data"),
		Tools:        strPtr("python"),
		Sources:      strPtr("kaggle"),
		Improvements: strPtr("more charts"),
		Tags:         strPtr("data,analysis"),
		ImgURL:       "https://example.com/img.png",
		ImgAltText:   strPtr("a chart"),
		GithubURL:    "https://github.com/example/project",
	}
}

func TestProjectRepo_AddAndFindByID(t *testing.T) {
	repo := setupDB(t).ProjectRepo()

	project := sampleProject("Round Trip")
	require.NoError(t, repo.Add(&project))
	assert.NotZero(t, project.ID)

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	// Every submitted field comes back exactly as written.
	assert.Equal(t, project, *found)
}

func TestProjectRepo_FindByID_NotFound(t *testing.T) {
	repo := setupDB(t).ProjectRepo()

	found, err := repo.FindByID(9999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestProjectRepo_FindAll_InsertionOrder(t *testing.T) {
	repo := setupDB(t).ProjectRepo()

	for _, title := range []string{"First", "Second", "Third"} {
		p := sampleProject(title)
		require.NoError(t, repo.Add(&p))
	}

	projects, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "First", projects[0].Title)
	assert.Equal(t, "Second", projects[1].Title)
	assert.Equal(t, "Third", projects[2].Title)
}

func TestProjectRepo_DuplicateTitleRejected(t *testing.T) {
	repo := setupDB(t).ProjectRepo()

	first := sampleProject("Unique Title")
	require.NoError(t, repo.Add(&first))

	duplicate := sampleProject("Unique Title")
	err := repo.Add(&duplicate)
	assert.Error(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProjectRepo_TitleExists(t *testing.T) {
	repo := setupDB(t).ProjectRepo()

	p := sampleProject("Taken")
	require.NoError(t, repo.Add(&p))

	taken, err := repo.TitleExists("Taken", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// The row being edited does not conflict with itself.
	taken, err = repo.TitleExists("Taken", p.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.TitleExists("Free", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestProjectRepo_UpdateIsFullOverwrite(t *testing.T) {
	repo := setupDB(t).ProjectRepo()

	a := sampleProject("Record A")
	require.NoError(t, repo.Add(&a))

	// Template record with every field different, optional ones cleared.
	b := models.Project{
		ID:           a.ID,
		Title:        "Record B",
		Category:     "Game Design",
		DateFinished: "12-2024",
		Description:  "completely different",
		ImgURL:       "https://example.com/other.png",
		GithubURL:    "https://github.com/example/other",
	}
	require.NoError(t, repo.Update(&b))

	found, err := repo.FindByID(a.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, b, *found)
	assert.Nil(t, found.Subtitle)
	assert.Nil(t, found.Tags)
}
