package router

import (
	"fmt"
	"html/template"
	"time"

	"github.com/gin-contrib/multitemplate"
)

// LoadTemplates assembles every view with the base layout under a key
// matching what the handlers pass to Render.
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layout := templatesDir + "/layouts/base.html"

	// Helper to assemble files
	assemble := func(view string) []string {
		return []string{layout, templatesDir + "/views/" + view}
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"timeAgo": func(t time.Time) string {
			duration := time.Since(t)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			}
			return fmt.Sprintf("%dd ago", seconds/86400)
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Polls
	r.AddFromFilesFuncs("polls/index.html", funcMap, assemble("polls/index.html")...)
	r.AddFromFilesFuncs("polls/detail.html", funcMap, assemble("polls/detail.html")...)
	r.AddFromFilesFuncs("polls/results.html", funcMap, assemble("polls/results.html")...)
	r.AddFromFilesFuncs("polls/add_comment.html", funcMap, assemble("polls/add_comment.html")...)

	// Users
	r.AddFromFilesFuncs("users/list.html", funcMap, assemble("users/list.html")...)
	r.AddFromFilesFuncs("users/detail.html", funcMap, assemble("users/detail.html")...)
	r.AddFromFilesFuncs("users/settings.html", funcMap, assemble("users/settings.html")...)

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble("auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble("auth/register.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble("error.html")...)

	return r
}
