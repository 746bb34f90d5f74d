package gamify

import "github.com/cyberacademy/awareness-platform/internal/domain"

// GenerateFeedback builds the explanatory response for a simulation
// submission, keyed on whether the user's action was correct.
func GenerateFeedback(sim domain.Simulation, isCorrect bool) domain.Feedback {
	if isCorrect {
		return domain.Feedback{
			Type:        "success",
			Message:     "Excellent! You correctly identified this threat.",
			Explanation: sim.Explanation,
		}
	}

	correctAction := "Safe to proceed"
	if sim.IsMalicious {
		correctAction = "Report/Delete"
	}
	return domain.Feedback{
		Type:          "error",
		Message:       "Not quite right. Let's learn from this.",
		Explanation:   sim.Explanation,
		CorrectAction: correctAction,
	}
}
