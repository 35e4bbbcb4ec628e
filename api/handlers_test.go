package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lkwall/portfolio-site/database"
	"github.com/lkwall/portfolio-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSitePassword = "open sesame"

// fakeNotifier records contact dispatches instead of sending email.
type fakeNotifier struct {
	sent []models.ContactMessage
	err  error
}

func (f *fakeNotifier) SendContactMessage(_ context.Context, msg models.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// setupRouter builds the real router over an in-memory SQLite database.
func setupRouter(t *testing.T) (*chi.Mux, database.Database, *fakeNotifier) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.Session{}))

	currentDB := database.New(db)
	notifier := &fakeNotifier{}

	router, err := newRouter(currentDB, notifier, withConfig(map[string]string{
		"APP_SECRET":    "test-secret",
		"SITE_PASSWORD": testSitePassword,
	}))
	require.NoError(t, err)

	return router, currentDB, notifier
}

func get(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postForm(router http.Handler, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// login performs a successful login and returns the session cookie.
func login(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()

	rec := postForm(router, "/login", url.Values{"password": {testSitePassword}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/projects", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set after login")
	return nil
}

func validProjectValues(title string) url.Values {
	return url.Values{
		"title":         {title},
		"subtitle":      {"a subtitle"},
		"category":      {"Data Analysis"},
		"date_finished": {"03-2025"},
		"description":   {"description text"},
		"goal":          {"a goal"},
		"tags":          {"data,charts"},
		"img_url":       {"https://example.com/img.png"},
		"img_alt_text":  {"a chart"},
		"github_url":    {"https://github.com/example/project"},
	}
}

func projectCount(t *testing.T, db database.Database) int64 {
	t.Helper()
	count, err := db.ProjectRepo().Count()
	require.NoError(t, err)
	return count
}

func TestGuardedRoutesRedirectWithoutLogin(t *testing.T) {
	router, db, _ := setupRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/add-project"},
		{"GET", "/edit-project-1"},
		{"GET", "/edit-project-9999"},
	}
	for _, p := range paths {
		rec := get(router, p.path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, p.path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), p.path)
	}

	// A valid submission without a session performs no mutation.
	rec := postForm(router, "/add-project", validProjectValues("Sneaky"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, int64(0), projectCount(t, db))
}

func TestGuardRejectsTamperedCookie(t *testing.T) {
	router, _, _ := setupRouter(t)

	forged := &http.Cookie{Name: sessionCookieName, Value: "forged-token.deadbeef"}
	rec := get(router, "/add-project", forged)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginWrongPassword(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := postForm(router, "/login", url.Values{"password": {"wrong"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?failed=1", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, sessionCookieName, c.Name)
	}

	// The warning shows on the re-rendered form.
	rec = get(router, "/login?failed=1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), wrongPasswordWarning)

	// The guarded route is still unreachable.
	rec = get(router, "/add-project")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginCorrectPasswordReachesGuardedRoutes(t *testing.T) {
	router, _, _ := setupRouter(t)

	cookie := login(t, router)

	rec := get(router, "/add-project", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Add Project")
}

func TestCreateProjectRoundTrip(t *testing.T) {
	router, db, _ := setupRouter(t)
	cookie := login(t, router)

	rec := postForm(router, "/add-project", validProjectValues("My Project"), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/project-"), location)

	rec = get(router, location)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "My Project")
	assert.Contains(t, body, "a subtitle")
	assert.Contains(t, body, "description text")

	projects, err := db.ProjectRepo().FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	p := projects[0]
	assert.Equal(t, "My Project", p.Title)
	assert.Equal(t, "Data Analysis", p.Category)
	assert.Equal(t, "03-2025", p.DateFinished)
	require.NotNil(t, p.Subtitle)
	assert.Equal(t, "a subtitle", *p.Subtitle)
	require.NotNil(t, p.Tags)
	assert.Equal(t, "data,charts", *p.Tags)
	assert.Nil(t, p.Methods)
}

func TestCreateProjectValidationFailure(t *testing.T) {
	router, db, _ := setupRouter(t)
	cookie := login(t, router)

	values := validProjectValues("Bad URL")
	values.Set("img_url", "not a url")

	rec := postForm(router, "/add-project", values, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid URL.")
	assert.Equal(t, int64(0), projectCount(t, db))
}

func TestCreateProjectDuplicateTitle(t *testing.T) {
	router, db, _ := setupRouter(t)
	cookie := login(t, router)

	rec := postForm(router, "/add-project", validProjectValues("Twice"), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(router, "/add-project", validProjectValues("Twice"), cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
	assert.Equal(t, int64(1), projectCount(t, db))
}

func TestEditProjectIsFullOverwrite(t *testing.T) {
	router, db, _ := setupRouter(t)
	cookie := login(t, router)

	rec := postForm(router, "/add-project", validProjectValues("Before"), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	projects, err := db.ProjectRepo().FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	id := projects[0].ID

	// Resubmit with every field changed and the optional ones blank.
	values := url.Values{
		"title":         {"After"},
		"category":      {"Game Design"},
		"date_finished": {"12-2024"},
		"description":   {"rewritten"},
		"img_url":       {"https://example.com/new.png"},
		"github_url":    {"https://github.com/example/new"},
	}
	rec = postForm(router, fmt.Sprintf("/edit-project-%d", id), values, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	updated, err := db.ProjectRepo().FindByID(id)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "Game Design", updated.Category)
	assert.Equal(t, "12-2024", updated.DateFinished)
	assert.Equal(t, "rewritten", updated.Description)
	// Optional fields omitted from the resubmission are gone, not
	// preserved from the old row.
	assert.Nil(t, updated.Subtitle)
	assert.Nil(t, updated.Goal)
	assert.Nil(t, updated.Tags)
	assert.Nil(t, updated.ImgAltText)
}

func TestEditUnknownProjectIs404(t *testing.T) {
	router, _, _ := setupRouter(t)
	cookie := login(t, router)

	rec := get(router, "/edit-project-9999", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowProjectNotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := get(router, "/project-9999")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A non-numeric id is indistinguishable from a missing row.
	rec = get(router, "/project-abc")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectsListing(t *testing.T) {
	router, db, _ := setupRouter(t)

	for _, title := range []string{"One", "Two"} {
		p := models.Project{
			Title:        title,
			Category:     "Other",
			DateFinished: "01-2025",
			Description:  "d",
			ImgURL:       "https://example.com/i.png",
			GithubURL:    "https://github.com/x/y",
		}
		require.NoError(t, db.ProjectRepo().Add(&p))
	}

	rec := get(router, "/projects")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "One")
	assert.Contains(t, body, "Two")

	rec = get(router, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "One")
}

func TestContactSubmissionDispatchesOneEmail(t *testing.T) {
	router, db, notifier := setupRouter(t)

	values := url.Values{
		"name":    {"A"},
		"email":   {"a@example.com"},
		"phone":   {"555"},
		"message": {"hi"},
	}
	rec := postForm(router, "/contact", values)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact?msg_sent=1", rec.Header().Get("Location"))

	require.Len(t, notifier.sent, 1)
	msg := notifier.sent[0]
	assert.Equal(t, "A", msg.Name)
	assert.Equal(t, "a@example.com", msg.Email)
	assert.Equal(t, "555", msg.Phone)
	assert.Equal(t, "hi", msg.Message)

	// Nothing is persisted for a contact submission.
	assert.Equal(t, int64(0), projectCount(t, db))

	rec = get(router, "/contact?msg_sent=1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your message has been sent!")
}

func TestContactValidationFailureSendsNothing(t *testing.T) {
	router, _, notifier := setupRouter(t)

	values := url.Values{
		"name":    {"A"},
		"email":   {"not-an-email"},
		"phone":   {"555"},
		"message": {"hi"},
	}
	rec := postForm(router, "/contact", values)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email address.")
	assert.Empty(t, notifier.sent)
}

func TestContactTransportFailureIs500(t *testing.T) {
	router, _, notifier := setupRouter(t)
	notifier.err = fmt.Errorf("smtp down")

	values := url.Values{
		"name":    {"A"},
		"email":   {"a@example.com"},
		"phone":   {"555"},
		"message": {"hi"},
	}
	rec := postForm(router, "/contact", values)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSessionCookieSigning(t *testing.T) {
	secret := []byte("s3cret")

	value := signSessionCookie(secret, "token-123")
	token, ok := verifySessionCookie(secret, value)
	assert.True(t, ok)
	assert.Equal(t, "token-123", token)

	_, ok = verifySessionCookie(secret, "token-123.badsignature")
	assert.False(t, ok)

	_, ok = verifySessionCookie([]byte("other"), value)
	assert.False(t, ok)
}
