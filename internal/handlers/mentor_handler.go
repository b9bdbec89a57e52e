package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/services"
	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type MentorHandler struct {
	BaseHandler
	mentors   services.MentorService
	dashboard services.DashboardService
	export    services.ExportService
}

func NewMentorHandler(
	mentors services.MentorService,
	dashboard services.DashboardService,
	export services.ExportService,
	sessions *session.Manager,
	location *time.Location,
	logger utils.Logger,
) *MentorHandler {
	return &MentorHandler{
		BaseHandler: NewBaseHandler(logger, sessions, location),
		mentors:     mentors,
		dashboard:   dashboard,
		export:      export,
	}
}

// Dashboard renders every question with its answers and the board counts.
func (h *MentorHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var filter services.BoardFilter
	_ = c.ShouldBindQuery(&filter)

	questions, err := h.mentors.ListQuestions(ctx, filter)
	if err != nil {
		h.LogError(c, err, "Failed to list questions")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	// the board renders without counts
	stats, err := h.dashboard.GetStats(ctx)
	if err != nil {
		h.LogError(c, err, "Failed to load dashboard stats")
		stats = nil
	}

	h.render(c, "mentor.html", gin.H{
		"Title":     "Mentor Dashboard",
		"Questions": questions,
		"Stats":     stats,
		"Filter":    filter,
	})
}

// PostAnswer records an answer and marks the question answered
// @Summary Answer a question
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param question_id formData string true "Question ID"
// @Param answer_content formData string true "Answer"
// @Success 200 {object} models.AnswerPayload
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /mentor [post]
func (h *MentorHandler) PostAnswer(c *gin.Context) {
	mentorID, _ := h.currentUserID(c)

	var req services.CreateAnswerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	h.LogRequest(c, "Answering question", "question_id", req.QuestionID, "mentor_id", mentorID)

	res, err := h.mentors.Answer(c.Request.Context(), mentorID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"answer":  models.NewAnswerPayload(res.Answer, res.Mentor, h.location),
	})
}

func (h *MentorHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.GetStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export downloads every question and answer as an xlsx workbook.
func (h *MentorHandler) Export(c *gin.Context) {
	h.LogRequest(c, "Exporting questions")

	// buffered so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := h.export.WriteWorkbook(c.Request.Context(), &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("mentor-qa-%s.xlsx", time.Now().In(h.location).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
