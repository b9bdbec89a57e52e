package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mentorhub/mentor-qa-service/internal/events"
	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

const (
	msgUsernameTaken   = "Username already exists. Please choose a different username."
	msgEmailTaken      = "Email already exists. Please use a different email address."
	msgInvalidRole     = "Please select a valid role"
	msgBadCredentials  = "Invalid email or password"
	msgProfileCreated  = "Profile created with default role."
	msgRegisterFailure = "An error occurred while creating your account. Please try again."
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	now       func() time.Time
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs.FirstMessage(validator.RegisterRulePrecedence))
	}

	taken, err := s.repo.User().ExistsByUsername(ctx, nil, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, &ValidationError{Message: msgUsernameTaken, Cause: ErrUsernameTaken}
	}

	taken, err = s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, &ValidationError{Message: msgEmailTaken, Cause: ErrEmailTaken}
	}

	role := models.UserRole(req.Role)
	if !role.IsValid() {
		return nil, NewValidationError(msgInvalidRole)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.Fullname,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			return err
		}
		return txRepo.Profile().Create(ctx, nil, &models.UserProfile{UserID: user.ID, Role: role})
	})
	if err != nil {
		s.logger.Error("Failed to register user", "username", req.Username, "error", err)
		return nil, &ValidationError{Message: msgRegisterFailure, Cause: err}
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", role)
	s.publish(ctx, events.NewEvent(events.UserRegistered, events.UserRegisteredData{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(role),
	}))

	return &RegisterResult{User: user, Role: role}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs.FirstMessage(validator.LoginRulePrecedence))
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &ValidationError{Message: msgBadCredentials, Cause: ErrInvalidCredentials}
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !checkPassword(user, req.Password) {
		s.logger.Warn("Failed login attempt", "user_id", user.ID)
		return nil, &ValidationError{Message: msgBadCredentials, Cause: ErrInvalidCredentials}
	}

	result := &LoginResult{User: user}

	profile, err := s.repo.Profile().GetByUserID(ctx, nil, user.ID)
	switch {
	case err == nil:
		result.Role = profile.Role
	case repositories.IsNotFoundError(err):
		if err := s.repo.Profile().Create(ctx, nil, &models.UserProfile{UserID: user.ID, Role: models.RoleStudent}); err != nil {
			return nil, fmt.Errorf("failed to create default profile: %w", err)
		}
		result.Role = models.RoleStudent
		result.ProfileCreated = true
	default:
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if err := s.repo.User().UpdateLastLogin(ctx, nil, user.ID, s.now().UTC()); err != nil {
		s.logger.Warn("Failed to record last login", "user_id", user.ID, "error", err)
	}

	switch {
	case result.ProfileCreated:
		result.RedirectTo = "/student"
		result.Message = msgProfileCreated
	case result.Role == models.RoleMentor:
		result.RedirectTo = "/mentor"
		result.Message = fmt.Sprintf("Welcome back, %s! (Mentor)", user.FirstName)
	case result.Role == models.RoleStudent:
		result.RedirectTo = "/student"
		result.Message = fmt.Sprintf("Welcome back, %s! (Student)", user.FirstName)
	default:
		result.RedirectTo = "/"
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", result.Role)
	return result, nil
}

func (s *authService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) GetRole(ctx context.Context, userID uint) (models.UserRole, error) {
	role, err := s.repo.Profile().GetRole(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrProfileNotFound
		}
		return "", fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

func (s *authService) DeleteAccount(ctx context.Context, userID uint, password string) error {
	if strings.TrimSpace(password) == "" {
		return NewValidationError("Password is required to delete your account")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPassword(user, password) {
		return &ValidationError{Message: "Incorrect password", Cause: ErrInvalidCredentials}
	}

	if err := s.repo.User().Delete(ctx, nil, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("Account deleted", "user_id", userID)
	s.publish(ctx, events.NewEvent(events.UserDeleted, events.UserDeletedData{UserID: userID}))
	return nil
}

func (s *authService) publish(ctx context.Context, event *events.Event) {
	publishEvent(ctx, s.publisher, s.logger, event)
}

func checkPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// publishEvent logs delivery failures instead of returning them.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
