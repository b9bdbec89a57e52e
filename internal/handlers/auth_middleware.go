package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/services"
	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
)

// AuthMiddleware resolves the session user and gates routes by role.
type AuthMiddleware struct {
	auth     services.AuthService
	sessions *session.Manager
	logger   utils.Logger
}

func NewAuthMiddleware(auth services.AuthService, sessions *session.Manager, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, sessions: sessions, logger: logger}
}

// LoadUser sets user_id and, when the user has a profile, user_role.
// It never rejects a request.
func (m *AuthMiddleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := session.UserID(c)
		if !ok {
			c.Next()
			return
		}
		c.Set(ContextUserID, userID)

		role, err := m.auth.GetRole(c.Request.Context(), userID)
		switch {
		case err == nil:
			c.Set(ContextUserRole, role)
		case errors.Is(err, services.ErrProfileNotFound):
		default:
			utils.GetLogger(c, m.logger).Error("Failed to resolve user role", "user_id", userID, "error", err)
		}
		c.Next()
	}
}

// RequireLogin sends anonymous visitors to the login page.
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole checks the role resolved by LoadUser. Failures flash a
// message and go back to the home page.
func (m *AuthMiddleware) RequireRole(requiredRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRole)
		if !exists {
			m.sessions.Flash(c, session.FlashError, "User profile not found.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		if role, ok := userRole.(models.UserRole); !ok || role != requiredRole {
			m.sessions.Flash(c, session.FlashError, fmt.Sprintf("Access denied. %s role required.", requiredRole.Label()))
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
