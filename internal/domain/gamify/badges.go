package gamify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

// masteryBadge names the mastery badge for one training module. The
// per-module threshold is explicit: mfa-setup historically awarded at 85
// while the other modules award at 90, and both behaviors are preserved
// here rather than silently unified.
type masteryBadge struct {
	ID        string
	Name      string
	Threshold int
}

var masteryBadges = map[string]masteryBadge{
	domain.ModulePhishingSpotter: {ID: "phishing-expert", Name: "Phishing Expert", Threshold: 90},
	domain.ModuleMFASetup:        {ID: "mfa-master", Name: "MFA Master", Threshold: 85},
	domain.ModuleScamRecognizer:  {ID: "scam-detective", Name: "Scam Detective", Threshold: 90},
}

// genericMasteryThreshold applies to modules without a named mastery badge
const genericMasteryThreshold = 90

// EvaluateBadges scans a progress snapshot against every badge rule and
// returns the badges the snapshot qualifies for. The caller merges the
// result idempotently by id; badges already owned are simply returned
// again and filtered out at merge time. Output order is deterministic:
// known modules in catalog order, then extra modules sorted by id, then
// the stat, perfect and streak badges.
func EvaluateBadges(p domain.ProgressState) []domain.Badge {
	badges := make([]domain.Badge, 0)

	for _, moduleID := range moduleOrder(p.ModuleProgress) {
		data := p.ModuleProgress[moduleID]
		if named, ok := masteryBadges[moduleID]; ok {
			if data.Score >= named.Threshold {
				badges = append(badges, domain.Badge{
					ID:          named.ID,
					Name:        named.Name,
					Description: fmt.Sprintf("Achieved mastery in %s with a score of %d%%", moduleID, data.Score),
					ImageURL:    fmt.Sprintf("/badges/%s.png", named.ID),
					Category:    domain.BadgeCategoryModule,
					Rarity:      domain.RarityRare,
				})
			}
			continue
		}
		if data.Score >= genericMasteryThreshold {
			badges = append(badges, domain.Badge{
				ID:          moduleID + "-master",
				Name:        titleCaseModule(moduleID) + " Master",
				Description: fmt.Sprintf("Achieved 90%%+ accuracy in %s", moduleID),
				Category:    domain.BadgeCategoryModule,
				Rarity:      domain.RarityRare,
			})
		}
	}

	if p.Stats.PhishingEmailsIdentified >= 50 {
		badges = append(badges, domain.Badge{
			ID:          "phishing-hunter",
			Name:        "Phishing Hunter",
			Description: "Successfully identified 50 phishing attempts",
			ImageURL:    "/badges/phishing-hunter.png",
			Category:    domain.BadgeCategoryAchievement,
			Rarity:      domain.RarityRare,
		})
	}

	if p.Stats.ScamCallsAvoided >= 30 {
		badges = append(badges, domain.Badge{
			ID:          "scam-shield",
			Name:        "Scam Shield",
			Description: "Protected yourself from 30 scam calls",
			ImageURL:    "/badges/scam-shield.png",
			Category:    domain.BadgeCategoryAchievement,
			Rarity:      domain.RarityRare,
		})
	}

	if p.Stats.MFASetupCompleted >= 3 {
		badges = append(badges, domain.Badge{
			ID:          "mfa-guardian",
			Name:        "MFA Guardian",
			Description: "Set up MFA on 3 different platforms",
			ImageURL:    "/badges/mfa-guardian.png",
			Category:    domain.BadgeCategoryAchievement,
			Rarity:      domain.RarityRare,
		})
	}

	if p.Stats.PerfectScores >= 5 {
		badges = append(badges, domain.Badge{
			ID:          "perfect-defender",
			Name:        "Perfect Defender",
			Description: "Achieved 5 perfect scores",
			Category:    domain.BadgeCategoryPerfect,
			Rarity:      domain.RarityEpic,
		})
	}

	if p.Stats.LoginStreak >= 7 {
		badges = append(badges, domain.Badge{
			ID:          "consistent-learner",
			Name:        "Consistent Learner",
			Description: "7-day login streak",
			Category:    domain.BadgeCategoryStreak,
			Rarity:      domain.RarityRare,
		})
	}

	return badges
}

// EvaluateSpamBadges returns the badges a spam submission qualifies for,
// given the progress snapshot as updated by that submission.
func EvaluateSpamBadges(p domain.ProgressState, sub domain.SpamSubmission) []domain.Badge {
	badges := make([]domain.Badge, 0)

	if p.Stats.SimulationsPlayed == 1 {
		badges = append(badges, domain.Badge{
			ID:          "spam-hunter-novice",
			Name:        "Spam Hunter Novice",
			Description: "Submitted your first spam email for analysis",
			Category:    domain.BadgeCategoryAchievement,
			Rarity:      domain.RarityCommon,
		})
	}

	if sub.UserAssessment.IsSpam == sub.Analysis.IsMalicious {
		badges = append(badges, domain.Badge{
			ID:          "spam-detective",
			Name:        "Spam Detective",
			Description: "Correctly identified a malicious email",
			Category:    domain.BadgeCategoryAchievement,
			Rarity:      domain.RarityRare,
		})
	}

	if sub.Analysis.RiskScore >= 80 {
		badges = append(badges, domain.Badge{
			ID:          "threat-expert",
			Name:        "Threat Expert",
			Description: "Identified a high-risk malicious email",
			Category:    domain.BadgeCategorySpecial,
			Rarity:      domain.RarityEpic,
		})
	}

	if p.Stats.SimulationsPlayed >= 10 {
		badges = append(badges, domain.Badge{
			ID:          "spam-hunter-expert",
			Name:        "Spam Hunter Expert",
			Description: "Submitted 10+ spam emails for analysis",
			Category:    domain.BadgeCategoryAchievement,
			Rarity:      domain.RarityRare,
		})
	}

	return badges
}

// moduleOrder returns known modules in catalog order followed by any other
// modules present in the progress map, sorted.
func moduleOrder(progress map[string]domain.ModuleProgress) []string {
	order := make([]string, 0, len(progress))
	seen := make(map[string]bool, len(progress))
	for _, id := range domain.KnownModules {
		if _, ok := progress[id]; ok {
			order = append(order, id)
			seen[id] = true
		}
	}
	extras := make([]string, 0)
	for id := range progress {
		if !seen[id] {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	return append(order, extras...)
}

// titleCaseModule turns a module id like "phishing-spotter" into
// "Phishing Spotter".
func titleCaseModule(moduleID string) string {
	words := strings.Split(moduleID, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
