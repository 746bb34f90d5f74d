package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeverityForWeight(t *testing.T) {
	tests := []struct {
		weight   int
		expected Severity
	}{
		{25, SeverityCritical},
		{20, SeverityCritical},
		{18, SeverityHigh},
		{15, SeverityHigh},
		{12, SeverityMedium},
		{10, SeverityMedium},
		{5, SeverityLow},
		{-10, SeverityMedium}, // magnitude, not sign
		{-8, SeverityLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SeverityForWeight(tt.weight), "weight %d", tt.weight)
	}
}

func TestModuleProgress_RecomputeScore(t *testing.T) {
	tests := []struct {
		name           string
		correctAnswers int
		totalAttempts  int
		expectedScore  int
	}{
		{"Perfect", 10, 10, 100},
		{"Rounds up", 2, 3, 67},
		{"Rounds down", 1, 3, 33},
		{"No attempts", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp := ModuleProgress{CorrectAnswers: tt.correctAnswers, TotalAttempts: tt.totalAttempts}
			mp.RecomputeScore()

			assert.Equal(t, tt.expectedScore, mp.Score)
		})
	}
}

func TestNewProgressState(t *testing.T) {
	now := time.Now()
	p := NewProgressState(now)

	assert.Equal(t, 0, p.Points)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, XP{Current: 0, ToNextLevel: 1000}, p.XP)
	assert.NotNil(t, p.CompletedModules)
	assert.NotNil(t, p.ModuleProgress)
	assert.NotNil(t, p.Badges)
	assert.NotNil(t, p.Achievements)
	assert.Equal(t, now, p.Stats.LastLoginDate)
}

func TestProgressState_MergeBadges(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewProgressState(now)

	candidates := []Badge{
		{ID: "phishing-expert", Name: "Phishing Expert"},
		{ID: "mfa-master", Name: "MFA Master"},
	}

	added := p.MergeBadges(candidates, now)

	assert.Len(t, added, 2)
	assert.Len(t, p.Badges, 2)
	assert.Equal(t, now, p.Badges[0].EarnedAt)

	// Re-qualifying owned badges adds nothing.
	added = p.MergeBadges(candidates, now.Add(time.Hour))

	assert.Empty(t, added)
	assert.Len(t, p.Badges, 2)
	assert.Equal(t, now, p.Badges[0].EarnedAt)
}

func TestProgressState_MergeBadges_PartialOverlap(t *testing.T) {
	now := time.Now()
	p := NewProgressState(now)
	p.MergeBadges([]Badge{{ID: "phishing-expert"}}, now)

	added := p.MergeBadges([]Badge{
		{ID: "phishing-expert"},
		{ID: "scam-detective"},
	}, now)

	assert.Len(t, added, 1)
	assert.Equal(t, "scam-detective", added[0].ID)
	assert.Len(t, p.Badges, 2)
}

func TestProgressState_MergeAchievements_NewCompletion(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewProgressState(now)

	completed := p.MergeAchievements([]Achievement{
		{ID: "security-novice", Progress: 1, Target: 1, Completed: true},
		{ID: "simulation-master", Progress: 3, Target: 50, Completed: false},
	}, now)

	assert.Len(t, completed, 1)
	assert.Equal(t, "security-novice", completed[0].ID)
	assert.Len(t, p.Achievements, 2)
	assert.NotNil(t, p.Achievements[0].EarnedAt)
	assert.Nil(t, p.Achievements[1].EarnedAt)
}

func TestProgressState_MergeAchievements_ProgressOverwritten(t *testing.T) {
	now := time.Now()
	p := NewProgressState(now)
	p.MergeAchievements([]Achievement{
		{ID: "simulation-master", Progress: 3, Target: 50, Completed: false},
	}, now)

	p.MergeAchievements([]Achievement{
		{ID: "simulation-master", Progress: 7, Target: 50, Completed: false},
	}, now)

	assert.Len(t, p.Achievements, 1)
	assert.Equal(t, 7, p.Achievements[0].Progress)
}

func TestProgressState_RecomputeAverageAccuracy(t *testing.T) {
	p := NewProgressState(time.Now())
	p.ModuleProgress["a"] = ModuleProgress{CorrectAnswers: 9, TotalAttempts: 10}
	p.ModuleProgress["b"] = ModuleProgress{CorrectAnswers: 1, TotalAttempts: 2}

	p.RecomputeAverageAccuracy()

	assert.Equal(t, 83, p.Stats.AverageAccuracy) // 10/12

	p.ModuleProgress = map[string]ModuleProgress{}
	p.RecomputeAverageAccuracy()

	assert.Equal(t, 0, p.Stats.AverageAccuracy)
}

func TestProgressState_HasHelpers(t *testing.T) {
	p := NewProgressState(time.Now())
	p.Badges = append(p.Badges, Badge{ID: "phishing-expert"})
	p.CompletedModules = append(p.CompletedModules, ModulePhishingSpotter)

	assert.True(t, p.HasBadge("phishing-expert"))
	assert.False(t, p.HasBadge("mfa-master"))
	assert.True(t, p.HasCompletedModule(ModulePhishingSpotter))
	assert.False(t, p.HasCompletedModule(ModuleMFASetup))
}
