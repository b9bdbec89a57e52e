package services

import (
	"context"
	"fmt"
	"io"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CreateQuestionRequest = validator.CreateQuestionRequest
type CreateAnswerRequest = validator.CreateAnswerRequest
type BoardFilter = validator.BoardFilter
type GenerateAnswerRequest = validator.GenerateAnswerRequest
type TranslateRequest = validator.TranslateRequest

type RegisterResult struct {
	User *models.User
	Role models.UserRole
}

// Message is the flash shown on the login page after signing up.
func (r *RegisterResult) Message() string {
	return fmt.Sprintf("Account created successfully as %s! Please login.", r.Role.Label())
}

type LoginResult struct {
	User *models.User
	Role models.UserRole
	// ProfileCreated is set when the user had no profile and was given the
	// student role during this login.
	ProfileCreated bool
	RedirectTo     string
	Message        string
}

type AnswerResult struct {
	Answer *models.Answer
	Mentor *models.User
}

type GeneratedAnswer struct {
	Answer          string `json:"ai_answer"`
	QuestionTitle   string `json:"question_title"`
	QuestionContent string `json:"question_content"`
}

type Translation struct {
	Text           string `json:"translated_text"`
	OriginalText   string `json:"original_text"`
	TargetLanguage string `json:"target_language"`
	Fallback       bool   `json:"fallback,omitempty"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)

	// GetRole returns ErrProfileNotFound when the user has no profile.
	GetRole(ctx context.Context, userID uint) (models.UserRole, error)

	// DeleteAccount removes the user and everything they own after
	// confirming the password.
	DeleteAccount(ctx context.Context, userID uint, password string) error
}

// QuestionService is the student side of the board.
type QuestionService interface {
	Create(ctx context.Context, studentID uint, req *CreateQuestionRequest) (*models.Question, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Question, error)
	Delete(ctx context.Context, questionID, studentID uint) error
}

// MentorService is the mentor side of the board.
type MentorService interface {
	// ListQuestions returns the board, optionally narrowed by status and
	// category.
	ListQuestions(ctx context.Context, filter BoardFilter) ([]models.Question, error)
	Answer(ctx context.Context, mentorID uint, req *CreateAnswerRequest) (*AnswerResult, error)
}

type AssistService interface {
	GenerateAnswer(ctx context.Context, userID uint, req *GenerateAnswerRequest) (*GeneratedAnswer, error)
	Translate(ctx context.Context, userID uint, req *TranslateRequest) (*Translation, error)
}

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type ExportService interface {
	// WriteWorkbook writes an xlsx workbook of every question and answer.
	WriteWorkbook(ctx context.Context, w io.Writer) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Question() QuestionService
	Mentor() MentorService
	Assist() AssistService
	Dashboard() DashboardService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
