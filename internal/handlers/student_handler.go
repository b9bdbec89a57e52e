package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/services"
	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	questions services.QuestionService
}

func NewStudentHandler(questions services.QuestionService, sessions *session.Manager, location *time.Location, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger, sessions, location),
		questions:   questions,
	}
}

// Dashboard renders the student's own questions, newest first
func (h *StudentHandler) Dashboard(c *gin.Context) {
	studentID, _ := h.currentUserID(c)

	questions, err := h.questions.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.LogError(c, err, "Failed to list questions", "student_id", studentID)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	h.render(c, "student.html", gin.H{
		"Title":     "My Questions",
		"Questions": questions,
	})
}

// PostQuestion creates a question
// @Summary Post a question
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param category formData string true "Category"
// @Success 200 {object} models.QuestionPayload
// @Failure 400 {object} ErrorResponse
// @Router /student [post]
func (h *StudentHandler) PostQuestion(c *gin.Context) {
	studentID, _ := h.currentUserID(c)

	var req services.CreateQuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	h.LogRequest(c, "Posting question", "student_id", studentID, "category", req.Category)

	question, err := h.questions.Create(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.flash(c, session.FlashSuccess, "Question posted successfully!")
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"question": models.NewQuestionPayload(question, h.location),
	})
}

// DeleteQuestion deletes one of the caller's own questions
// @Summary Delete a question
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /delete-question/{id} [delete]
func (h *StudentHandler) DeleteQuestion(c *gin.Context) {
	studentID, _ := h.currentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.respondError(c, http.StatusNotFound, "Question not found")
		return
	}

	h.LogRequest(c, "Deleting question", "question_id", id, "student_id", studentID)

	if err := h.questions.Delete(c.Request.Context(), uint(id), studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Question deleted successfully",
	})
}
