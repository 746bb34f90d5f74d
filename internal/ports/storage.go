package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

// Storage defines the contract for persisting and querying domain entities
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateUserProgress writes the progress snapshot using optimistic
	// concurrency on User.Version; returns domain.ErrVersionConflict when
	// a concurrent write won.
	UpdateUserProgress(ctx context.Context, user *domain.User) error
	TopUsersByPoints(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// Simulation operations
	CreateSimulation(ctx context.Context, sim *domain.Simulation) error
	GetSimulation(ctx context.Context, id uuid.UUID) (*domain.Simulation, error)
	ListSimulations(ctx context.Context, moduleID, difficulty string, limit int) ([]domain.Simulation, error)
	GetRandomSimulation(ctx context.Context, moduleID, difficulty string) (*domain.Simulation, error)

	// Spam submission operations
	CreateSpamSubmission(ctx context.Context, sub *domain.SpamSubmission) error
	ListSpamSubmissions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SpamSubmission, error)
	CountSpamSubmissions(ctx context.Context, userID uuid.UUID) (int, error)
	GetSubmissionStats(ctx context.Context, userID uuid.UUID) (*domain.SubmissionStats, error)
	GetThreatTypeStats(ctx context.Context) ([]domain.ThreatTypeStat, error)

	// Lifecycle
	Close() error
}
