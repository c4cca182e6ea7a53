package handlers

import (
	"net/http"
	"strconv"

	"pollbox/internal/db"
	"pollbox/internal/models"
	"pollbox/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Directory lists all members, split into staff and non-staff sections.
func (h *UserHandler) Directory(c *gin.Context) {
	var users []models.User
	db.DB.Order("username ASC").Find(&users)

	var staff, nonStaff []models.User
	for _, user := range users {
		if user.IsStaff() {
			staff = append(staff, user)
		} else {
			nonStaff = append(nonStaff, user)
		}
	}

	Render(c, http.StatusOK, "users/list.html", gin.H{
		"Staff":    staff,
		"NonStaff": nonStaff,
		"Title":    "Members",
	})
}

// Show renders a single member page with bio and recent comments.
func (h *UserHandler) Show(c *gin.Context) {
	userID := utils.StringToInt(c.Param("id"))

	var user models.User
	if err := db.DB.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No user found matching the query")
		return
	}

	// Comments carry a free-text author name, so match on the username.
	var comments []models.Comment
	db.DB.Where("author = ?", user.Username).
		Order("created_at DESC").
		Limit(50).
		Find(&comments)

	Render(c, http.StatusOK, "users/detail.html", gin.H{
		"User":     user,
		"Comments": comments,
		"Title":    user.Username,
	})
}

// ShowSettings renders the profile settings form for the logged-in user.
// The session may outlive the user row, so a missing context user goes
// back to the login page.
func (h *UserHandler) ShowSettings(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var profile models.Profile
	db.DB.Where("user_id = ?", user.ID).First(&profile)

	Render(c, http.StatusOK, "users/settings.html", gin.H{
		"User":    user,
		"Profile": profile,
		"Title":   "Settings",
	})
}

// UpdateSettings saves the profile bio.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	bio := c.PostForm("bio")
	if err := db.DB.Model(&models.Profile{}).
		Where("user_id = ?", user.ID).
		Update("bio", bio).Error; err != nil {
		var profile models.Profile
		db.DB.Where("user_id = ?", user.ID).First(&profile)
		Render(c, http.StatusInternalServerError, "users/settings.html", gin.H{
			"User":    user,
			"Profile": profile,
			"Error":   "Saving the profile failed",
			"Title":   "Settings",
		})
		return
	}

	c.Redirect(http.StatusFound, "/polls/users/"+strconv.Itoa(int(user.ID)))
}
