package handlers

import (
	"net/http"
	"strconv"

	"pollbox/internal/db"
	"pollbox/internal/models"
	"pollbox/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// ShowCreate renders the add-comment form. The question id is prefilled
// and disabled; the author field is prefilled with the session username
// when somebody is logged in.
func (h *CommentHandler) ShowCreate(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var question models.Question
	if err := db.DB.First(&question, "id = ?", id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No question found matching the query")
		return
	}

	author := ""
	if user := currentUser(c); user != nil {
		author = user.Username
	}

	Render(c, http.StatusOK, "polls/add_comment.html", gin.H{
		"Question": question,
		"Author":   author,
		"Text":     "",
		"Title":    "Add comment",
	})
}

// Create stores a comment and redirects back to the question page.
func (h *CommentHandler) Create(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var question models.Question
	if err := db.DB.First(&question, "id = ?", id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No question found matching the query")
		return
	}

	author := c.PostForm("author")
	text := c.PostForm("text")

	if author == "" || text == "" {
		Render(c, http.StatusBadRequest, "polls/add_comment.html", gin.H{
			"Question": question,
			"Author":   author,
			"Text":     text,
			"Error":    "Author and comment text must not be empty",
			"Title":    "Add comment",
		})
		return
	}

	comment := models.Comment{
		QuestionID: question.ID,
		Author:     author,
		Text:       text,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		Render(c, http.StatusInternalServerError, "polls/add_comment.html", gin.H{
			"Question": question,
			"Author":   author,
			"Text":     text,
			"Error":    "Saving the comment failed",
			"Title":    "Add comment",
		})
		return
	}

	c.Redirect(http.StatusFound, "/polls/"+strconv.Itoa(int(question.ID)))
}
