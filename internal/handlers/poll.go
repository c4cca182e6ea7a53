package handlers

import (
	"html/template"
	"net/http"
	"time"

	"pollbox/internal/db"
	"pollbox/internal/middleware"
	"pollbox/internal/models"
	"pollbox/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const indexCacheKey = "polls:index"

type PollHandler struct{}

func NewPollHandler() *PollHandler {
	return &PollHandler{}
}

// currentUser returns the logged-in user from the request context, or nil.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists && user != nil {
		return user.(*models.User)
	}
	return nil
}

// Index lists the five most recently published questions. Questions with a
// future publication date are not listed, for admins either.
func (h *PollHandler) Index(c *gin.Context) {
	// Cache only the question list. Render mutates the gin.H it is given
	// (current user, path), so the map itself must be fresh per request.
	var questions []models.Question
	if cached := utils.GetCache().Get(indexCacheKey); cached != nil {
		if list, ok := cached.([]models.Question); ok {
			questions = list
		}
	}

	if questions == nil {
		db.DB.Where("pub_date <= ?", time.Now()).
			Order("pub_date DESC").
			Limit(5).
			Find(&questions)

		utils.GetCache().Set(indexCacheKey, questions, 1*time.Minute)
	}

	Render(c, http.StatusOK, "polls/index.html", gin.H{
		"Questions": questions,
		"Title":     "Latest polls",
	})
}

// loadQuestion fetches a question with its choices and enforces the
// visibility rule: hidden questions are a 404 for everyone but admins.
// When it returns nil the 404 page has already been rendered.
func loadQuestion(c *gin.Context, choiceOrder string) *models.Question {
	id := c.Param("id")

	var question models.Question
	err := db.DB.Preload("Choices", func(tx *gorm.DB) *gorm.DB {
		return tx.Order(choiceOrder)
	}).First(&question, "id = ?", utils.StringToInt(id)).Error
	if err != nil {
		RenderError(c, http.StatusNotFound, "No question found matching the query")
		return nil
	}

	user := currentUser(c)
	if question.IsHidden() && (user == nil || !user.IsAdmin()) {
		RenderError(c, http.StatusNotFound, "No question found matching the query")
		return nil
	}

	return &question
}

// commentView pairs a comment with its rendered Markdown body.
type commentView struct {
	models.Comment
	TextHTML template.HTML
}

// renderDetail renders the question page with its vote form and comments.
// errorMessage, when non-empty, shows up next to the vote form.
func renderDetail(c *gin.Context, code int, question *models.Question, errorMessage string) {
	var comments []models.Comment
	db.DB.Where("question_id = ?", question.ID).
		Order("created_at ASC").
		Find(&comments)

	views := make([]commentView, len(comments))
	for i, com := range comments {
		views[i] = commentView{
			Comment:  com,
			TextHTML: utils.RenderMarkdown(com.Text),
		}
	}

	Render(c, code, "polls/detail.html", gin.H{
		"Question":     question,
		"Comments":     views,
		"Title":        question.Text,
		"ErrorMessage": errorMessage,
	})
}

// Detail shows a single question with its vote form.
func (h *PollHandler) Detail(c *gin.Context) {
	question := loadQuestion(c, "id ASC")
	if question == nil {
		return
	}
	renderDetail(c, http.StatusOK, question, "")
}

// Results shows the tallies of a question, most-voted choice first.
func (h *PollHandler) Results(c *gin.Context) {
	question := loadQuestion(c, "votes DESC, id ASC")
	if question == nil {
		return
	}

	Render(c, http.StatusOK, "polls/results.html", gin.H{
		"Question": question,
		"Title":    question.Text + " - results",
	})
}

// Vote records a vote for the submitted choice and redirects to the
// results page. A missing or invalid choice re-renders the question page
// with an inline error and leaves every counter untouched.
func (h *PollHandler) Vote(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	// Same choice ordering as Detail, so an error re-render shows the
	// form unchanged.
	var question models.Question
	err := db.DB.Preload("Choices", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).First(&question, "id = ?", id).Error
	if err != nil {
		RenderError(c, http.StatusNotFound, "No question found matching the query")
		return
	}

	choiceID := utils.StringToInt(c.PostForm("choice"))

	var choice models.Choice
	if choiceID == 0 ||
		db.DB.Where("question_id = ?", question.ID).First(&choice, "id = ?", choiceID).Error != nil {
		renderDetail(c, http.StatusOK, &question, "You didn't select a choice.")
		return
	}

	// Atomic increment so concurrent votes are never lost.
	if err := db.DB.Model(&models.Choice{}).
		Where("id = ?", choice.ID).
		UpdateColumn("votes", gorm.Expr("votes + ?", 1)).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Voting failed, please try again")
		return
	}

	// Always redirect after a successful POST so a page reload cannot
	// submit the vote twice.
	c.Redirect(http.StatusFound, "/polls/"+c.Param("id")+"/results")
}
