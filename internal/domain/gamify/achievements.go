package gamify

import "github.com/cyberacademy/awareness-platform/internal/domain"

// EvaluateAchievements recomputes the full achievement set from a progress
// snapshot. It always returns every achievement with current progress and
// completion; the caller merges by id, preserving EarnedAt on records that
// already completed once.
func EvaluateAchievements(p domain.ProgressState) []domain.Achievement {
	completedCount := len(p.CompletedModules)

	// "All modules" counts the known catalog, not just modules attempted so
	// far: an empty progress map must not count as complete.
	highScoring := 0
	for _, moduleID := range domain.KnownModules {
		if mp, ok := p.ModuleProgress[moduleID]; ok && mp.Score >= 80 {
			highScoring++
		}
	}

	hasPerfect := 0
	for _, mp := range p.ModuleProgress {
		if mp.Score == 100 {
			hasPerfect = 1
			break
		}
	}

	return []domain.Achievement{
		{
			ID:          "security-novice",
			Name:        "Security Novice",
			Description: "Complete your first module",
			Progress:    completedCount,
			Target:      1,
			Completed:   completedCount >= 1,
			Category:    "milestone",
		},
		{
			ID:          "security-expert",
			Name:        "Security Expert",
			Description: "Complete all modules with a score of 80% or higher",
			Progress:    highScoring,
			Target:      len(domain.KnownModules),
			Completed:   highScoring >= len(domain.KnownModules),
			Category:    "mastery",
		},
		{
			ID:          "perfect-defender",
			Name:        "Perfect Defender",
			Description: "Achieve 100% score in any module",
			Progress:    hasPerfect,
			Target:      1,
			Completed:   hasPerfect == 1,
			Category:    "mastery",
		},
		{
			ID:          "consistent-learner",
			Name:        "Consistent Learner",
			Description: "Maintain a 7-day login streak",
			Progress:    p.Stats.LoginStreak,
			Target:      7,
			Completed:   p.Stats.LoginStreak >= 7,
			Category:    "streak",
		},
		{
			ID:          "first-simulation",
			Name:        "First Steps",
			Description: "Complete your first simulation",
			Progress:    p.Stats.SimulationsPlayed,
			Target:      1,
			Completed:   p.Stats.SimulationsPlayed >= 1,
			Category:    "milestone",
		},
		{
			ID:          "simulation-master",
			Name:        "Simulation Master",
			Description: "Complete 50 simulations",
			Progress:    p.Stats.SimulationsPlayed,
			Target:      50,
			Completed:   p.Stats.SimulationsPlayed >= 50,
			Category:    "milestone",
		},
		{
			ID:          "accuracy-expert",
			Name:        "Accuracy Expert",
			Description: "Maintain 90%+ average accuracy",
			Progress:    p.Stats.AverageAccuracy,
			Target:      90,
			Completed:   p.Stats.AverageAccuracy >= 90,
			Category:    "performance",
		},
	}
}
