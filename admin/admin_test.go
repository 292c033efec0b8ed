package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio/analytics"
	"portfolio/models"
)

const testPassword = "password123"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect database")
	}

	db.AutoMigrate(
		&models.User{}, &models.Profile{}, &models.Article{}, &models.KBArticle{},
		&models.ContactSubmission{}, &models.CVDownload{}, &analytics.PageEvent{},
	)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("secret"))
	router.Use(sessions.Sessions("test-session", store))

	module := NewAdminModule(db, analytics.NewAnalyticsModule(db, zerolog.Nop()), zerolog.Nop())
	module.RegisterRoutes(router)
	return router
}

func createTestUser(db *gorm.DB, email, role string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)

	profile := &models.Profile{ID: uuid.NewString(), FullName: "Test Author"}
	db.Create(profile)

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		ProfileID:    profile.ID,
	}
	db.Create(user)
	return user
}

// loginAs performs a real login request and returns the session cookies.
func loginAs(t *testing.T, router *gin.Engine, email string) []*http.Cookie {
	body, _ := json.Marshal(gin.H{"email": email, "password": testPassword})
	req, _ := http.NewRequest("POST", "/api/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	return w.Result().Cookies()
}

func doJSON(router *gin.Engine, method, path string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_Unauthenticated(t *testing.T) {
	router := setupTestRouter(setupTestDB(t))

	w := doJSON(router, "GET", "/api/admin/articles", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)

	w := doJSON(router, "POST", "/api/admin/login",
		gin.H{"email": "admin@example.com", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_ReturnsUserAndRole(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "editor@example.com", models.RoleEditor)

	cookies := loginAs(t, router, "editor@example.com")
	w := doJSON(router, "GET", "/api/admin/session", nil, cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		User models.User `json:"user"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "editor@example.com", resp.User.Email)
	assert.Equal(t, models.RoleEditor, resp.User.Role)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)

	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/admin/logout", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	// the cleared cookie from the logout response replaces the session
	w = doJSON(router, "GET", "/api/admin/articles", nil, w.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateArticle_BlankSlugDerivedFromTitle(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/admin/articles", gin.H{
		"title":     "Hello World!!",
		"content":   "Some content",
		"published": true,
	}, cookies)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Article models.Article `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "hello-world", resp.Article.Slug)
	assert.NotEmpty(t, resp.Article.ID)
	assert.NotNil(t, resp.Article.PublishedAt)
}

func TestCreateArticle_ManualSlugKept(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/admin/articles", gin.H{
		"title":   "Hello World!!",
		"slug":    "my-own-slug",
		"content": "Some content",
	}, cookies)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Article models.Article `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "my-own-slug", resp.Article.Slug)
}

func TestCreateArticle_MissingContentRejectedBeforeStore(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/admin/articles", gin.H{
		"title": "No content here",
	}, cookies)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	db.Model(&models.Article{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateArticle_InvalidMetricsJSONRejected(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/admin/articles", gin.H{
		"title":   "Broken Case Study",
		"content": "body",
		"type":    models.TypeCaseStudy,
		"metrics": "{not json",
	}, cookies)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	db.Model(&models.Article{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateArticle_ExcerptOnlyEditKeepsSlugAndPublishTime(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/admin/articles", gin.H{
		"title":     "Hello World!!",
		"content":   "Some content",
		"published": true,
	}, cookies)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Article models.Article `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(router, "PUT", "/api/admin/articles/"+created.Article.ID, gin.H{
		"title":     "Hello World!!",
		"slug":      created.Article.Slug,
		"content":   "Some content",
		"excerpt":   "Now with an excerpt",
		"published": true,
	}, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Article models.Article `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &updated)
	assert.Equal(t, "hello-world", updated.Article.Slug)
	assert.Equal(t, "Now with an excerpt", updated.Article.Excerpt)
	assert.Equal(t, created.Article.PublishedAt.Unix(), updated.Article.PublishedAt.Unix())
}

func TestUpdateArticle_VanishedRowIs404(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "PUT", "/api/admin/articles/gone", gin.H{
		"title":   "Ghost",
		"slug":    "ghost",
		"content": "body",
	}, cookies)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteArticle_EditorForbidden(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "editor@example.com", models.RoleEditor)
	cookies := loginAs(t, router, "editor@example.com")

	w := doJSON(router, "DELETE", "/api/admin/articles/some-id", nil, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteArticle_AdminAbsentIDIsSuccess(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "DELETE", "/api/admin/articles/already-gone", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyticsReport_EditorForbidden(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "editor@example.com", models.RoleEditor)
	cookies := loginAs(t, router, "editor@example.com")

	w := doJSON(router, "POST", "/api/admin/analytics/report", gin.H{
		"startDate": "7daysAgo",
		"endDate":   "today",
		"metric":    "overview",
	}, cookies)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAnalyticsReport_AdminOverview(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/admin/analytics/report", gin.H{
		"startDate": "7daysAgo",
		"endDate":   "today",
		"metric":    "overview",
	}, cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Rows []analytics.DayOverview `json:"rows"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Rows, 8)
}

func TestKBCreate_MissingCategoryRejected(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(db, "admin@example.com", models.RoleAdmin)
	cookies := loginAs(t, router, "admin@example.com")

	w := doJSON(router, "POST", "/api/admin/kb", gin.H{
		"title":   "DKIM Setup",
		"content": "body",
	}, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(router, "POST", "/api/admin/kb", gin.H{
		"title":    "DKIM Setup",
		"content":  "body",
		"category": "exchange-online",
	}, cookies)
	assert.Equal(t, http.StatusCreated, w.Code)
}
