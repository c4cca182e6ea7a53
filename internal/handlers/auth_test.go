package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"pollbox/internal/db"
	"pollbox/internal/models"
)

func TestRegister(t *testing.T) {
	t.Run("creates user with companion profile and logs in", func(t *testing.T) {
		r := setupRouter(t)

		form := url.Values{}
		form.Set("username", "newbie")
		form.Set("password", "password1")
		w := doRequest(r, "POST", "/signup", form, nil)

		if w.Code != http.StatusFound {
			t.Fatalf("Expected 302, got %d", w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/polls" {
			t.Errorf("Expected redirect to /polls, got %s", loc)
		}

		var user models.User
		if err := db.DB.Where("username = ?", "newbie").First(&user).Error; err != nil {
			t.Fatalf("User was not created: %v", err)
		}
		if user.Password == "password1" {
			t.Error("Password must be stored hashed")
		}

		var count int64
		db.DB.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("Expected exactly 1 profile, got %d", count)
		}

		// The signup response carries a live session.
		w = doRequest(r, "GET", "/settings", nil, w.Result().Cookies())
		if w.Code != http.StatusOK {
			t.Errorf("Expected a logged-in session after signup, got %d", w.Code)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		r := setupRouter(t)

		form := url.Values{}
		form.Set("username", "newbie")
		form.Set("password", "short")
		w := doRequest(r, "POST", "/signup", form, nil)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}

		var count int64
		db.DB.Model(&models.User{}).Count(&count)
		if count != 0 {
			t.Errorf("Expected no user created, got %d", count)
		}
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		r := setupRouter(t)
		createUser(t, "taken", "password1", models.RoleUser)

		form := url.Values{}
		form.Set("username", "taken")
		form.Set("password", "password1")
		w := doRequest(r, "POST", "/signup", form, nil)

		if w.Code != http.StatusConflict {
			t.Fatalf("Expected 409, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "already taken") {
			t.Error("Expected inline error about the duplicate username")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("wrong password re-renders with error", func(t *testing.T) {
		r := setupRouter(t)
		createUser(t, "alice", "password1", models.RoleUser)

		form := url.Values{}
		form.Set("username", "alice")
		form.Set("password", "wrong")
		w := doRequest(r, "POST", "/login", form, nil)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Wrong username or password") {
			t.Error("Expected inline error on the login page")
		}
	})

	t.Run("logout clears the session", func(t *testing.T) {
		r := setupRouter(t)
		createUser(t, "alice", "password1", models.RoleUser)
		cookies := login(t, r, "alice", "password1")

		w := doRequest(r, "GET", "/logout", nil, cookies)
		if w.Code != http.StatusFound {
			t.Fatalf("Expected 302, got %d", w.Code)
		}

		// The cleared cookie comes back in the logout response.
		w = doRequest(r, "GET", "/settings", nil, w.Result().Cookies())
		if w.Code != http.StatusFound {
			t.Errorf("Expected redirect to login after logout, got %d", w.Code)
		}
	})
}
