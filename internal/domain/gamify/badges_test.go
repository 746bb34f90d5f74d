package gamify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

func badgeIDs(badges []domain.Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestEvaluateBadges_ModuleMastery(t *testing.T) {
	tests := []struct {
		name     string
		moduleID string
		score    int
		expected []string
	}{
		{
			name:     "Phishing mastery at 90",
			moduleID: domain.ModulePhishingSpotter,
			score:    92,
			expected: []string{"phishing-expert"},
		},
		{
			name:     "Phishing just below threshold",
			moduleID: domain.ModulePhishingSpotter,
			score:    89,
			expected: []string{},
		},
		{
			name:     "MFA mastery awards at 85",
			moduleID: domain.ModuleMFASetup,
			score:    85,
			expected: []string{"mfa-master"},
		},
		{
			name:     "MFA below its lower threshold",
			moduleID: domain.ModuleMFASetup,
			score:    84,
			expected: []string{},
		},
		{
			name:     "Scam recognizer holds the 90 threshold",
			moduleID: domain.ModuleScamRecognizer,
			score:    89,
			expected: []string{},
		},
		{
			name:     "Unknown module gets the generic master badge",
			moduleID: "threat-hunter",
			score:    95,
			expected: []string{"threat-hunter-master"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := domain.NewProgressState(time.Now())
			progress.ModuleProgress[tt.moduleID] = domain.ModuleProgress{Score: tt.score}

			badges := EvaluateBadges(progress)

			assert.Equal(t, tt.expected, badgeIDs(badges))
		})
	}
}

func TestEvaluateBadges_GenericMasterName(t *testing.T) {
	progress := domain.NewProgressState(time.Now())
	progress.ModuleProgress["threat-hunter"] = domain.ModuleProgress{Score: 95}

	badges := EvaluateBadges(progress)

	assert.Len(t, badges, 1)
	assert.Equal(t, "Threat Hunter Master", badges[0].Name)
}

func TestEvaluateBadges_StatBadges(t *testing.T) {
	progress := domain.NewProgressState(time.Now())
	progress.Stats.PhishingEmailsIdentified = 50
	progress.Stats.ScamCallsAvoided = 30
	progress.Stats.MFASetupCompleted = 3
	progress.Stats.PerfectScores = 5
	progress.Stats.LoginStreak = 7

	badges := EvaluateBadges(progress)

	assert.Equal(t, []string{
		"phishing-hunter",
		"scam-shield",
		"mfa-guardian",
		"perfect-defender",
		"consistent-learner",
	}, badgeIDs(badges))
}

func TestEvaluateBadges_PerfectDefenderIsEpic(t *testing.T) {
	progress := domain.NewProgressState(time.Now())
	progress.Stats.PerfectScores = 5

	badges := EvaluateBadges(progress)

	assert.Len(t, badges, 1)
	assert.Equal(t, domain.RarityEpic, badges[0].Rarity)
}

func TestEvaluateBadges_Deterministic(t *testing.T) {
	progress := domain.NewProgressState(time.Now())
	progress.ModuleProgress[domain.ModulePhishingSpotter] = domain.ModuleProgress{Score: 95}
	progress.ModuleProgress[domain.ModuleScamRecognizer] = domain.ModuleProgress{Score: 95}
	progress.ModuleProgress["zz-extra"] = domain.ModuleProgress{Score: 95}
	progress.ModuleProgress["aa-extra"] = domain.ModuleProgress{Score: 95}

	first := EvaluateBadges(progress)
	second := EvaluateBadges(progress)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		"phishing-expert",
		"scam-detective",
		"aa-extra-master",
		"zz-extra-master",
	}, badgeIDs(first))
}

func TestEvaluateSpamBadges(t *testing.T) {
	tests := []struct {
		name              string
		simulationsPlayed int
		assessmentCorrect bool
		riskScore         int
		expected          []string
	}{
		{
			name:              "First submission, correct, high risk",
			simulationsPlayed: 1,
			assessmentCorrect: true,
			riskScore:         85,
			expected:          []string{"spam-hunter-novice", "spam-detective", "threat-expert"},
		},
		{
			name:              "Wrong assessment on a mild email",
			simulationsPlayed: 3,
			assessmentCorrect: false,
			riskScore:         40,
			expected:          []string{},
		},
		{
			name:              "Tenth submission",
			simulationsPlayed: 10,
			assessmentCorrect: false,
			riskScore:         40,
			expected:          []string{"spam-hunter-expert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := domain.NewProgressState(time.Now())
			progress.Stats.SimulationsPlayed = tt.simulationsPlayed

			sub := domain.SpamSubmission{
				Analysis:       domain.AnalysisResult{IsMalicious: true, RiskScore: tt.riskScore},
				UserAssessment: domain.UserAssessment{IsSpam: tt.assessmentCorrect},
			}

			badges := EvaluateSpamBadges(progress, sub)

			assert.Equal(t, tt.expected, badgeIDs(badges))
		})
	}
}

func TestEvaluateSpamBadges_ThreatExpertIsSpecial(t *testing.T) {
	progress := domain.NewProgressState(time.Now())
	progress.Stats.SimulationsPlayed = 2

	sub := domain.SpamSubmission{
		Analysis:       domain.AnalysisResult{IsMalicious: true, RiskScore: 90},
		UserAssessment: domain.UserAssessment{IsSpam: false},
	}

	badges := EvaluateSpamBadges(progress, sub)

	assert.Equal(t, []string{"threat-expert"}, badgeIDs(badges))
	assert.Equal(t, domain.BadgeCategorySpecial, badges[0].Category)
	assert.Equal(t, domain.RarityEpic, badges[0].Rarity)
}

func TestTitleCaseModule(t *testing.T) {
	assert.Equal(t, "Phishing Spotter", titleCaseModule("phishing-spotter"))
	assert.Equal(t, "Mfa Setup", titleCaseModule("mfa-setup"))
}
