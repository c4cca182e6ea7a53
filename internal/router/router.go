package router

import (
	"net/http"
	"pollbox/internal/handlers"
	"pollbox/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	pollHandler := handlers.NewPollHandler()
	commentHandler := handlers.NewCommentHandler()
	userHandler := handlers.NewUserHandler()

	// Public Routes
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/polls")
	})
	r.GET("/polls", pollHandler.Index)                      // latest published questions
	r.GET("/polls/:id", pollHandler.Detail)                 // question with vote form
	r.GET("/polls/:id/results", pollHandler.Results)        // tallies, most voted first
	r.GET("/polls/:id/comment", commentHandler.ShowCreate)  // add-comment form
	r.POST("/polls/:id/comment", commentHandler.Create)     // submit comment

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/polls/:id/vote", pollHandler.Vote)
		authorized.GET("/polls/users", userHandler.Directory)
		authorized.GET("/polls/users/:id", userHandler.Show)
		authorized.GET("/settings", userHandler.ShowSettings)
		authorized.POST("/settings", userHandler.UpdateSettings)
	}
}
