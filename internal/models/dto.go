package models

import (
	"time"
)

// DisplayTimeLayout renders timestamps like "March 04, 2025 at 02:30 PM".
const DisplayTimeLayout = "January 02, 2006 at 03:04 PM"

func FormatDisplayTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayTimeLayout)
}

type QuestionPayload struct {
	ID        uint             `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Category  QuestionCategory `json:"category"`
	Status    QuestionStatus   `json:"status"`
	CreatedAt string           `json:"created_at"`
}

func NewQuestionPayload(q *Question, loc *time.Location) QuestionPayload {
	return QuestionPayload{
		ID:        q.ID,
		Title:     q.Title,
		Content:   q.Content,
		Category:  q.Category,
		Status:    q.Status,
		CreatedAt: FormatDisplayTime(q.CreatedAt, loc),
	}
}

type AnswerPayload struct {
	ID         uint   `json:"id"`
	Content    string `json:"content"`
	MentorName string `json:"mentor_name"`
	CreatedAt  string `json:"created_at"`
}

func NewAnswerPayload(a *Answer, mentor *User, loc *time.Location) AnswerPayload {
	return AnswerPayload{
		ID:         a.ID,
		Content:    a.Content,
		MentorName: mentor.DisplayName(),
		CreatedAt:  FormatDisplayTime(a.CreatedAt, loc),
	}
}

// DashboardStats summarises the question board for mentors.
type DashboardStats struct {
	TotalQuestions    int64 `json:"total_questions"`
	PendingQuestions  int64 `json:"pending_questions"`
	AnsweredQuestions int64 `json:"answered_questions"`
	ClosedQuestions   int64 `json:"closed_questions"`
	UniqueStudents    int64 `json:"unique_students"`
	TotalAnswers      int64 `json:"total_answers"`
}
