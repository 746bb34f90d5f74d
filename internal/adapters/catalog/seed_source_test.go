package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

func TestSeedSource_Simulations(t *testing.T) {
	source := NewSeedSource()

	sims, err := source.Simulations(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, sims)

	byModule := make(map[string]int)
	for _, sim := range sims {
		byModule[sim.ModuleID]++

		assert.NotEmpty(t, sim.Title)
		assert.NotEmpty(t, sim.Difficulty)
		assert.NotEmpty(t, sim.Explanation)
		assert.Greater(t, sim.Points, 0)
		assert.False(t, sim.CreatedAt.IsZero())
	}

	// Every catalog module has practice content.
	for _, moduleID := range domain.KnownModules {
		assert.Greater(t, byModule[moduleID], 0, "no simulations for %s", moduleID)
	}
}

func TestSeedSource_SampleEmails(t *testing.T) {
	source := NewSeedSource()

	emails, err := source.SampleEmails(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, emails)

	for _, email := range emails {
		assert.NotEmpty(t, email.Subject)
		assert.NotEmpty(t, email.Sender)
		assert.NotEmpty(t, email.SenderEmail)
		assert.NotEmpty(t, email.Body)
	}
}
