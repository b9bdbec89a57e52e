// Package templates holds the server-rendered pages.
package templates

import (
	"embed"
	"html/template"
	"time"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

//go:embed *.html
var files embed.FS

// Load parses every page. Pages are addressed by file name, e.g. "mentor.html".
func Load(loc *time.Location) (*template.Template, error) {
	return template.New("pages").Funcs(Funcs(loc)).ParseFS(files, "*.html")
}

func Funcs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"displayTime": func(t time.Time) string {
			return models.FormatDisplayTime(t, loc)
		},
		"displayName": func(u models.User) string {
			return u.DisplayName()
		},
		"categories": models.QuestionCategories,
		"statuses":   models.QuestionStatuses,
	}
}
