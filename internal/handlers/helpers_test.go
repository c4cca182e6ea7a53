package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"pollbox/internal/db"
	"pollbox/internal/middleware"
	"pollbox/internal/models"
	"pollbox/internal/router"
	"pollbox/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires a fresh in-memory database into the db package global
// and returns a fully routed engine, the same way main assembles it.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A second pooled connection would get its own empty :memory: database.
	sqlDB, err := g.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(g); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.DB = g

	// The index page is cached across requests.
	utils.GetCache().Delete("polls:index")

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("pollbox_session", store))
	r.HTMLRender = router.LoadTemplates("../../web/templates")
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

// createQuestion stores a question published the given number of days away
// from now (negative for the past) with two choices unless withChoices is
// false.
func createQuestion(t *testing.T, text string, days int, withChoices bool) models.Question {
	t.Helper()

	question := models.Question{
		Text:    text,
		PubDate: time.Now().Add(time.Duration(days) * 24 * time.Hour),
	}
	if err := db.DB.Create(&question).Error; err != nil {
		t.Fatalf("Failed to create question: %v", err)
	}
	if withChoices {
		for _, text := range []string{"Choice 1", "Choice 2"} {
			choice := models.Choice{QuestionID: question.ID, Text: text}
			if err := db.DB.Create(&choice).Error; err != nil {
				t.Fatalf("Failed to create choice: %v", err)
			}
		}
	}
	utils.GetCache().Delete("polls:index")
	return question
}

func createUser(t *testing.T, username, password, role string) models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{Username: username, Password: hash, Role: role}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// login posts the credentials and returns the session cookies for
// follow-up requests.
func login(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	w := doRequest(r, "POST", "/login", form, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("Login failed with status %d", w.Code)
	}
	return w.Result().Cookies()
}

func doRequest(r *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
