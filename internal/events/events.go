package events

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

const (
	EventSource  = "mentor-qa-service"
	EventVersion = "1.0"
)

// Event types
const (
	UserRegistered   = "user.registered"
	UserDeleted      = "user.deleted"
	QuestionPosted   = "question.posted"
	QuestionAnswered = "question.answered"
	QuestionDeleted  = "question.deleted"
)

// Event is the envelope every domain event is published in.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

func NewEvent(eventType string, data any) *Event {
	return &Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

type UserRegisteredData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UserDeletedData struct {
	UserID uint `json:"user_id"`
}

type QuestionPostedData struct {
	QuestionID uint   `json:"question_id"`
	StudentID  uint   `json:"student_id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
}

type QuestionAnsweredData struct {
	QuestionID uint `json:"question_id"`
	AnswerID   uint `json:"answer_id"`
	MentorID   uint `json:"mentor_id"`
	StudentID  uint `json:"student_id"`
}

type QuestionDeletedData struct {
	QuestionID uint `json:"question_id"`
	StudentID  uint `json:"student_id"`
}
