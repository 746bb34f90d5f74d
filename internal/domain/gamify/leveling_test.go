package gamify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

func TestUpdateLevel(t *testing.T) {
	tests := []struct {
		name          string
		totalPoints   int
		expectedLevel int
		expectedXP    domain.XP
	}{
		{
			name:          "Zero points is level one",
			totalPoints:   0,
			expectedLevel: 1,
			expectedXP:    domain.XP{Current: 0, ToNextLevel: 1000},
		},
		{
			name:          "Just below the boundary",
			totalPoints:   999,
			expectedLevel: 1,
			expectedXP:    domain.XP{Current: 999, ToNextLevel: 1},
		},
		{
			name:          "Exactly on the boundary",
			totalPoints:   1000,
			expectedLevel: 2,
			expectedXP:    domain.XP{Current: 0, ToNextLevel: 1000},
		},
		{
			name:          "Mid level",
			totalPoints:   1500,
			expectedLevel: 2,
			expectedXP:    domain.XP{Current: 500, ToNextLevel: 500},
		},
		{
			name:          "Several levels up",
			totalPoints:   5250,
			expectedLevel: 6,
			expectedXP:    domain.XP{Current: 250, ToNextLevel: 750},
		},
		{
			name:          "Negative total clamps to zero",
			totalPoints:   -50,
			expectedLevel: 1,
			expectedXP:    domain.XP{Current: 0, ToNextLevel: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, xp := UpdateLevel(tt.totalPoints)

			assert.Equal(t, tt.expectedLevel, level)
			assert.Equal(t, tt.expectedXP, xp)
		})
	}
}
