package ports

import (
	"context"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

// ContentSource defines the contract for supplying training content.
// Implementations may serve built-in seed data or fetch from an external
// content management system.
type ContentSource interface {
	// Simulations returns the simulation catalog to load into storage
	Simulations(ctx context.Context) ([]domain.Simulation, error)

	// SampleEmails returns example emails for exercising the spam analyzer
	SampleEmails(ctx context.Context) ([]domain.EmailContent, error)
}
