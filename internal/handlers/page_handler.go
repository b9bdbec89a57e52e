package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
)

type PageHandler struct {
	BaseHandler
}

func NewPageHandler(sessions *session.Manager, location *time.Location, logger utils.Logger) *PageHandler {
	return &PageHandler{BaseHandler: NewBaseHandler(logger, sessions, location)}
}

func (h *PageHandler) Home(c *gin.Context) {
	h.render(c, "home.html", gin.H{"Title": "Home"})
}

func (h *PageHandler) About(c *gin.Context) {
	h.render(c, "about.html", gin.H{"Title": "About"})
}
