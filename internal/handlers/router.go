package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/services"
	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
)

const serviceName = "mentor-qa-service"

type HandlerManager struct {
	services       services.ServiceManager
	sessions       *session.Manager
	authMiddleware *AuthMiddleware
	pageHandler    *PageHandler
	authHandler    *AuthHandler
	studentHandler *StudentHandler
	mentorHandler  *MentorHandler
	assistHandler  *AssistHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *session.Manager,
	location *time.Location,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		services:       serviceManager,
		sessions:       sessions,
		authMiddleware: NewAuthMiddleware(serviceManager.Auth(), sessions, logger),
		pageHandler:    NewPageHandler(sessions, location, logger),
		authHandler:    NewAuthHandler(serviceManager.Auth(), sessions, location, logger),
		studentHandler: NewStudentHandler(serviceManager.Question(), sessions, location, logger),
		mentorHandler: NewMentorHandler(
			serviceManager.Mentor(),
			serviceManager.Dashboard(),
			serviceManager.Export(),
			sessions, location, logger,
		),
		assistHandler: NewAssistHandler(serviceManager.Assist(), sessions, location, logger),
	}
}

// SetupRoutes registers every page and endpoint. Call after SetupMiddleware.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(MethodNotAllowed)

	router.Use(hm.sessions.Middleware(), hm.authMiddleware.LoadUser())

	router.GET("/", hm.pageHandler.Home)
	router.GET("/about", hm.pageHandler.About)

	router.GET("/login", hm.authHandler.LoginPage)
	router.POST("/login", hm.authHandler.Login)
	router.GET("/register", hm.authHandler.RegisterPage)
	router.POST("/register", hm.authHandler.Register)
	router.GET("/logout", hm.authHandler.Logout)
	router.POST("/logout", hm.authHandler.Logout)

	// Login required, any role
	authed := router.Group("")
	authed.Use(hm.authMiddleware.RequireLogin())
	{
		authed.DELETE("/account", hm.authHandler.DeleteAccount)
		authed.DELETE("/delete-question/:id", hm.studentHandler.DeleteQuestion)
		authed.POST("/generate-ai-answer", hm.assistHandler.GenerateAnswer)
		authed.POST("/translate", hm.assistHandler.Translate)
	}

	// Mentor routes - Mentors only
	mentor := router.Group("/mentor")
	mentor.Use(hm.authMiddleware.RequireLogin(), hm.authMiddleware.RequireRole(models.RoleMentor))
	{
		mentor.GET("", hm.mentorHandler.Dashboard)
		mentor.POST("", hm.mentorHandler.PostAnswer)
		mentor.GET("/stats", hm.mentorHandler.Stats)
		mentor.GET("/export", hm.mentorHandler.Export)
	}

	// Student routes - Students only
	student := router.Group("/student")
	student.Use(hm.authMiddleware.RequireLogin(), hm.authMiddleware.RequireRole(models.RoleStudent))
	{
		student.GET("", hm.studentHandler.Dashboard)
		student.POST("", hm.studentHandler.PostQuestion)
	}

	router.GET("/health", func(c *gin.Context) {
		if err := hm.services.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": serviceName,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})
}
