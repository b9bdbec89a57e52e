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

const (
	msgMissingFields = "Please fill in all required fields"
	msgUnexpected    = "An unexpected error occurred. Please try again."
)

type AuthHandler struct {
	BaseHandler
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService, sessions *session.Manager, location *time.Location, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger, sessions, location),
		auth:        auth,
	}
}

type deleteAccountRequest struct {
	Password string `form:"password" json:"password"`
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.renderLogin(c, "")
}

// Login signs the user in and redirects by role.
// @Summary Log in
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.flash(c, session.FlashError, msgMissingFields)
		h.renderLogin(c, "")
		return
	}

	h.LogRequest(c, "Login attempt", "email", req.Email)

	res, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		h.flashFormError(c, err, "Login failed")
		h.renderLogin(c, req.Email)
		return
	}

	if err := h.sessions.Login(c, res.User.ID); err != nil {
		h.flashFormError(c, err, "Failed to start session")
		h.renderLogin(c, req.Email)
		return
	}

	level := session.FlashSuccess
	if res.ProfileCreated {
		level = session.FlashInfo
	}
	h.flash(c, level, res.Message)
	c.Redirect(http.StatusFound, res.RedirectTo)
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	h.renderRegister(c, &services.RegisterRequest{})
}

// Register creates an account and sends the user to the login page.
// @Summary Register
// @Accept x-www-form-urlencoded
// @Success 302
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.flash(c, session.FlashError, msgMissingFields)
		h.renderRegister(c, &services.RegisterRequest{})
		return
	}

	h.LogRequest(c, "Registering user", "username", req.Username, "role", req.Role)

	res, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		h.flashFormError(c, err, "Registration failed")
		req.Password = ""
		h.renderRegister(c, &req)
		return
	}

	h.flash(c, session.FlashSuccess, res.Message())
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		h.LogError(c, err, "Failed to destroy session")
	}
	c.Redirect(http.StatusFound, "/login")
}

// DeleteAccount removes the current user after confirming the password.
// @Summary Delete account
// @Accept json
// @Produce json
// @Param body body deleteAccountRequest true "Password confirmation"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /account [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, _ := h.currentUserID(c)
	h.LogRequest(c, "Deleting account", "user_id", userID)

	var req deleteAccountRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := h.auth.DeleteAccount(c.Request.Context(), userID, req.Password); err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.sessions.Logout(c); err != nil {
		h.LogError(c, err, "Failed to destroy session")
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account deleted successfully",
	})
}

// flashFormError shows the user facing message of a validation failure,
// or a generic one for anything else.
func (h *AuthHandler) flashFormError(c *gin.Context, err error, logMessage string) {
	if msg, ok := services.UserMessage(err); ok {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.LogRequest(c, logMessage, "reason", msg)
		}
		h.flash(c, session.FlashError, msg)
		return
	}
	h.LogError(c, err, logMessage)
	h.flash(c, session.FlashError, msgUnexpected)
}

func (h *AuthHandler) renderLogin(c *gin.Context, email string) {
	h.render(c, "login.html", gin.H{"Title": "Login", "Email": email})
}

func (h *AuthHandler) renderRegister(c *gin.Context, form *services.RegisterRequest) {
	h.render(c, "register.html", gin.H{"Title": "Register", "Form": form})
}
