package repositories

import "context"

// Repository groups every repository behind one handle
type Repository interface {
	// Account domain
	User() UserRepository
	Profile() ProfileRepository

	// Q&A domain
	Question() QuestionRepository
	Answer() AnswerRepository

	// AI assist audit
	AIGeneration() AIGenerationRepository

	Dashboard() DashboardRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
