// Package gamify implements the progression engine: point calculation,
// leveling, badge and achievement evaluation, and simulation feedback.
// Every function is a pure function of its inputs; the application layer
// merges the returned values into the persisted ProgressState.
package gamify

import (
	"math"

	"github.com/cyberacademy/awareness-platform/internal/domain"
	"github.com/cyberacademy/awareness-platform/internal/domain/spamscan"
)

// ModulePoints converts module-completion performance into a point delta:
// 10x the percentage score, up to 50 accuracy bonus, and a 25-point bonus
// for passing on the first attempt. A non-positive attempt count is
// normalized to max(correctAnswers, 1); this guards the division, it is
// not a scoring rule.
func ModulePoints(score, correctAnswers, totalAttempts int) int {
	if score < 0 {
		score = 0
	}
	if correctAnswers < 0 {
		correctAnswers = 0
	}
	if totalAttempts <= 0 {
		totalAttempts = correctAnswers
		if totalAttempts < 1 {
			totalAttempts = 1
		}
	}

	basePoints := float64(score) * 10
	accuracyBonus := float64(correctAnswers) / float64(totalAttempts) * 50
	speedBonus := 0.0
	if totalAttempts == 1 {
		speedBonus = 25
	}
	return int(math.Round(basePoints + accuracyBonus + speedBonus))
}

// SimulationPoints converts a simulation attempt into a point delta. A
// correct answer earns the simulation's base points plus a 50% speed bonus
// under 30 seconds; a wrong answer costs 10% of the base points. The
// penalty may drive a user's total negative; leveling clamps that later.
func SimulationPoints(basePoints int, isCorrect bool, timeSpentSeconds float64) int {
	if isCorrect {
		points := basePoints
		if timeSpentSeconds < 30 {
			points += int(math.Round(float64(basePoints) * 0.5))
		}
		return points
	}
	return -int(math.Round(float64(basePoints) * 0.1))
}

// SpamSubmissionPoints awards points for a spam submission and assembles
// the audit reason string. Bonuses are additive and independent apart from
// the correct-assessment branch and the risk-tier branch, which are each
// either/or.
func SpamSubmissionPoints(analysis domain.AnalysisResult, userSaysSpam bool) (int, string) {
	points := 5
	reason := "Submitted spam email (+5)"

	if userSaysSpam == analysis.IsMalicious {
		if analysis.IsMalicious {
			points += 15
			reason += ", Correctly identified malicious email (+15)"
		} else {
			points += 10
			reason += ", Correctly identified legitimate email (+10)"
		}
	}

	if analysis.RiskScore >= spamscan.RiskThresholdHigh {
		points += 10
		reason += ", High-risk email bonus (+10)"
	} else if analysis.RiskScore >= spamscan.RiskThresholdMedium {
		points += 5
		reason += ", Medium-risk email bonus (+5)"
	}

	if len(analysis.DetectedKeywords) >= 5 {
		points += 5
		reason += ", Detailed analysis bonus (+5)"
	}

	switch analysis.ThreatType {
	case domain.ThreatPhishing:
		points += 5
		reason += ", Phishing detection bonus (+5)"
	case domain.ThreatMalware:
		points += 8
		reason += ", Malware detection bonus (+8)"
	}

	return points, reason
}
