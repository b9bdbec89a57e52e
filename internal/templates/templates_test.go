package templates

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

func TestLoad_RendersEveryPage(t *testing.T) {
	tmpl, err := Load(time.UTC)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	created := time.Date(2025, 3, 4, 14, 30, 0, 0, time.UTC)
	questions := []models.Question{{
		ID:        7,
		Title:     "What is recursion?",
		Content:   "Explain <please>",
		Category:  models.CategoryProgramming,
		Status:    models.StatusAnswered,
		CreatedAt: created,
		Student:   models.User{Username: "alice", FirstName: "Alice"},
		Answers: []models.Answer{{
			Content:   "A function that calls itself.",
			CreatedAt: created,
			Mentor:    models.User{Username: "maria"},
		}},
	}}

	base := func(extra map[string]any) map[string]any {
		data := map[string]any{"UserRole": "", "LoggedIn": false, "Flashes": nil}
		for k, v := range extra {
			data[k] = v
		}
		return data
	}

	tests := []struct {
		page string
		data map[string]any
		want []string
	}{
		{"home.html", base(nil), []string{"Get started", `href="/login"`}},
		{"about.html", base(nil), []string{"About"}},
		{"login.html", base(map[string]any{"Email": "alice@example.com"}), []string{`value="alice@example.com"`}},
		{"register.html", base(map[string]any{"Form": &validator.RegisterRequest{Username: "alice", Role: "mentor"}}), []string{`value="alice"`, `value="mentor" selected`}},
		{"student.html", base(map[string]any{"UserRole": "student", "LoggedIn": true, "Questions": questions}), []string{
			"Programming", "Answered", "March 04, 2025 at 02:30 PM", "maria", "Explain &lt;please&gt;", `href="/logout"`,
		}},
		{"mentor.html", base(map[string]any{
			"UserRole": "mentor", "LoggedIn": true, "Questions": questions,
			"Stats":  &models.DashboardStats{TotalQuestions: 1, AnsweredQuestions: 1},
			"Filter": validator.BoardFilter{Category: "career"},
		}), []string{"by Alice", "/mentor/export", `href="/mentor"`, `value="career" selected`, "All statuses"}},
	}
	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tmpl.ExecuteTemplate(&buf, tt.page, tt.data); err != nil {
				t.Fatalf("ExecuteTemplate() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s missing %q", tt.page, want)
				}
			}
		})
	}
}
