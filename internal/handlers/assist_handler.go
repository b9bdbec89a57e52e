package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentor-qa-service/internal/services"
	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
)

// AssistHandler serves the language model endpoints. Their error bodies
// are {"error": ...} rather than the board's {success, error}.
type AssistHandler struct {
	BaseHandler
	assist services.AssistService
}

func NewAssistHandler(assist services.AssistService, sessions *session.Manager, location *time.Location, logger utils.Logger) *AssistHandler {
	return &AssistHandler{
		BaseHandler: NewBaseHandler(logger, sessions, location),
		assist:      assist,
	}
}

// GenerateAnswer drafts an answer to a question
// @Summary Generate an AI answer
// @Accept json
// @Produce json
// @Param body body services.GenerateAnswerRequest true "Question and optional draft"
// @Success 200 {object} services.GeneratedAnswer
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]interface{}
// @Router /generate-ai-answer [post]
func (h *AssistHandler) GenerateAnswer(c *gin.Context) {
	userID, _ := h.currentUserID(c)

	var req services.GenerateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	h.LogRequest(c, "Generating answer", "question_id", req.QuestionID.ID, "user_id", userID)

	res, err := h.assist.GenerateAnswer(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"ai_answer":        res.Answer,
		"question_title":   res.QuestionTitle,
		"question_content": res.QuestionContent,
	})
}

// Translate translates UI text, falling back to a static dictionary when
// the model is unavailable
// @Summary Translate text
// @Accept json
// @Produce json
// @Param body body services.TranslateRequest true "Text and target language"
// @Success 200 {object} services.Translation
// @Failure 400 {object} map[string]string
// @Router /translate [post]
func (h *AssistHandler) Translate(c *gin.Context) {
	userID, _ := h.currentUserID(c)

	var req services.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	res, err := h.assist.Translate(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	body := gin.H{
		"success":         true,
		"translated_text": res.Text,
		"original_text":   res.OriginalText,
		"target_language": res.TargetLanguage,
	}
	if res.Fallback {
		body["fallback"] = true
	}
	c.JSON(http.StatusOK, body)
}

func (h *AssistHandler) handleServiceError(c *gin.Context, err error) {
	if msg, ok := services.UserMessage(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	switch {
	case errors.Is(err, services.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	case errors.Is(err, services.ErrAIUnavailable):
		h.LogError(c, err, "Answer generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate AI answer. Please try again.",
		})
	default:
		h.LogError(c, err, "Assist request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
