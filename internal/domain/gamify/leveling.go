package gamify

import "github.com/cyberacademy/awareness-platform/internal/domain"

// xpPerLevel is the fixed XP band per level. Levels are 1-indexed: level 1
// spans points [0,1000).
const xpPerLevel = 1000

// UpdateLevel recomputes level and XP from the total points. It is always
// computed from scratch rather than incremented, so repeated calls cannot
// drift. Negative totals (possible after simulation penalties) are clamped
// to zero before the modulo.
func UpdateLevel(totalPoints int) (int, domain.XP) {
	if totalPoints < 0 {
		totalPoints = 0
	}
	level := totalPoints/xpPerLevel + 1
	current := totalPoints % xpPerLevel
	return level, domain.XP{
		Current:     current,
		ToNextLevel: xpPerLevel - current,
	}
}
