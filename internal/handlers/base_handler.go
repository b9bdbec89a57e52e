package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/services"
	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
)

// Context keys set by AuthMiddleware.LoadUser
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// ErrorResponse is the JSON error body of the question board endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type BaseHandler struct {
	logger   utils.Logger
	sessions *session.Manager
	location *time.Location
}

func NewBaseHandler(logger utils.Logger, sessions *session.Manager, location *time.Location) BaseHandler {
	if location == nil {
		location = time.UTC
	}
	return BaseHandler{logger: logger, sessions: sessions, location: location}
}

// LogRequest logs an incoming request with the request scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, message string, args ...any) {
	args = append(args, "method", c.Request.Method, "path", c.Request.URL.Path)
	utils.GetLogger(c, h.logger).Info(message, args...)
}

// LogError logs a failed request
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, args ...any) {
	args = append(args, "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
	utils.GetLogger(c, h.logger).Error(message, args...)
}

// render executes a page with the role and pending flashes every page shows.
func (h *BaseHandler) render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	_, loggedIn := h.currentUserID(c)
	data["UserRole"] = string(h.currentRole(c))
	data["LoggedIn"] = loggedIn
	data["Flashes"] = h.sessions.PopFlashes(c)
	c.HTML(http.StatusOK, name, data)
}

func (h *BaseHandler) flash(c *gin.Context, level session.FlashLevel, message string) {
	h.sessions.Flash(c, level, message)
}

func (h *BaseHandler) currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func (h *BaseHandler) currentRole(c *gin.Context) models.UserRole {
	if v, ok := c.Get(ContextUserRole); ok {
		if role, ok := v.(models.UserRole); ok {
			return role
		}
	}
	return ""
}

func (h *BaseHandler) respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Success: false, Error: message})
}

// handleServiceError maps service errors for the board endpoints.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	if msg, ok := services.UserMessage(err); ok {
		h.respondError(c, http.StatusBadRequest, msg)
		return
	}

	switch {
	case errors.Is(err, services.ErrQuestionNotFound), errors.Is(err, services.ErrNotFound):
		h.respondError(c, http.StatusNotFound, "Question not found")
	case errors.Is(err, services.ErrUserNotFound):
		h.respondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrForbidden):
		h.respondError(c, http.StatusForbidden, "Access denied")
	default:
		h.LogError(c, err, "Request failed")
		h.respondError(c, http.StatusInternalServerError, err.Error())
	}
}
