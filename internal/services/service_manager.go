package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
	"github.com/mentorhub/mentor-qa-service/internal/events"
	"github.com/mentorhub/mentor-qa-service/internal/llm"
	"github.com/mentorhub/mentor-qa-service/internal/repositories"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// DisplayLocation is the zone timestamps are rendered in.
	DisplayLocation     *time.Location
	TranslationCacheTTL time.Duration
}

// Dependencies are the shared long-lived collaborators handed to every service.
type Dependencies struct {
	Repo      repositories.Repository
	Logger    *slog.Logger
	Validator *validator.Validator
	Publisher events.EventPublisher
	Model     llm.Generator
	Cache     *cache.CacheManager
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps   Dependencies
	config ServiceManagerConfig
	logger *slog.Logger

	// Service instances
	authService      AuthService
	questionService  QuestionService
	mentorService    MentorService
	assistService    AssistService
	dashboardService DashboardService
	exportService    ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	if config.DisplayLocation == nil {
		config.DisplayLocation = time.UTC
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewCacheManager(nil)
	}
	return &serviceManager{deps: deps, config: config, logger: deps.Logger}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	d := sm.deps
	sm.authService = NewAuthService(d.Repo, d.Logger, d.Validator, d.Publisher)
	sm.questionService = NewQuestionService(d.Repo, d.Cache, d.Logger, d.Validator, d.Publisher)
	sm.mentorService = NewMentorService(d.Repo, d.Cache, d.Logger, d.Validator, d.Publisher)
	sm.assistService = NewAssistService(d.Repo, d.Model, d.Cache.Translation, sm.config.TranslationCacheTTL, d.Logger)
	sm.dashboardService = NewDashboardService(d.Repo, d.Cache.Stats, d.Logger)
	sm.exportService = NewExportService(d.Repo, sm.config.DisplayLocation, d.Logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")
	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) Question() QuestionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.questionService
}

func (sm *serviceManager) Mentor() MentorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.mentorService
}

func (sm *serviceManager) Assist() AssistService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.assistService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.dashboardService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.exportService
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

// Shutdown closes the event publisher. The repository is owned and closed by
// its RepositoryManager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")
	return nil
}
