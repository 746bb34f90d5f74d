package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Severity classifies how strong a single keyword signal is
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityForWeight derives a severity from the absolute weight of the rule
// that produced a match. The thresholds are part of the scoring contract:
// the maliciousness verdict keys off critical/high matches.
func SeverityForWeight(weight int) Severity {
	if weight < 0 {
		weight = -weight
	}
	switch {
	case weight >= 20:
		return SeverityCritical
	case weight >= 15:
		return SeverityHigh
	case weight >= 10:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ThreatType is the primary classification assigned to an analyzed email
type ThreatType string

const (
	ThreatPhishing   ThreatType = "phishing"
	ThreatMalware    ThreatType = "malware"
	ThreatScam       ThreatType = "scam"
	ThreatSpam       ThreatType = "spam"
	ThreatLegitimate ThreatType = "legitimate"
)

// KeywordMatch is a single signal found while scanning email text or sender
type KeywordMatch struct {
	Keyword  string   `json:"keyword"`
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
}

// AnalysisResult is the outcome of analyzing one submitted email.
// It is persisted as a snapshot inside a SpamSubmission and never mutated
// after creation.
type AnalysisResult struct {
	IsMalicious      bool           `json:"is_malicious"`
	Confidence       int            `json:"confidence"` // 0 to 100
	ThreatType       ThreatType     `json:"threat_type"`
	DetectedKeywords []KeywordMatch `json:"detected_keywords"`
	RiskScore        int            `json:"risk_score"` // 0 to 100, clamped
	Explanation      string         `json:"explanation"`
}

// EmailContent is the caller-supplied email to analyze
type EmailContent struct {
	Subject      string    `json:"subject"`
	Sender       string    `json:"sender"`
	SenderEmail  string    `json:"sender_email"`
	Body         string    `json:"body"`
	ReceivedDate time.Time `json:"received_date"`
}

// UserAssessment is the submitter's own verdict on the email
type UserAssessment struct {
	IsSpam bool   `json:"is_spam"`
	Reason string `json:"reason,omitempty"`
}

// SpamSubmission records one analyzed email together with the points awarded
type SpamSubmission struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"user_id"`
	EmailContent   EmailContent   `json:"email_content"`
	Analysis       AnalysisResult `json:"analysis"`
	UserAssessment UserAssessment `json:"user_assessment"`
	PointsAwarded  int            `json:"points_awarded"`
	PointsReason   string         `json:"points_reason"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Training module identifiers. Module-specific stat counters and mastery
// thresholds key off these.
const (
	ModulePhishingSpotter = "phishing-spotter"
	ModuleMFASetup        = "mfa-setup"
	ModuleScamRecognizer  = "scam-recognizer"
)

// KnownModules lists every training module in catalog order
var KnownModules = []string{ModulePhishingSpotter, ModuleMFASetup, ModuleScamRecognizer}

// Simulation is a single practice exercise within a module
type Simulation struct {
	ID          uuid.UUID `json:"id"`
	ModuleID    string    `json:"module_id"`
	Title       string    `json:"title"`
	Difficulty  string    `json:"difficulty"`
	Points      int       `json:"points"`
	IsMalicious bool      `json:"is_malicious"`
	Content     string    `json:"content"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
}

// XP tracks progression within the current level
type XP struct {
	Current     int `json:"current"`
	ToNextLevel int `json:"to_next_level"`
}

// ModuleProgress accumulates a user's performance within one module.
// Score is always derived from CorrectAnswers/TotalAttempts, never set
// directly.
type ModuleProgress struct {
	Score           int       `json:"score"`
	CorrectAnswers  int       `json:"correct_answers"`
	TotalAttempts   int       `json:"total_attempts"`
	LastAttemptDate time.Time `json:"last_attempt_date"`

	// Module-specific counters
	SimulationsCompleted int  `json:"simulations_completed,omitempty"`
	PerfectRuns          int  `json:"perfect_runs,omitempty"`
	ScamsIdentified      int  `json:"scams_identified,omitempty"`
	PlatformsSetup       int  `json:"platforms_setup,omitempty"`
	SetupCompleted       bool `json:"setup_completed,omitempty"`
}

// RecomputeScore restores the score invariant after CorrectAnswers or
// TotalAttempts change.
func (mp *ModuleProgress) RecomputeScore() {
	if mp.TotalAttempts <= 0 {
		mp.Score = 0
		return
	}
	mp.Score = int(math.Round(float64(mp.CorrectAnswers) / float64(mp.TotalAttempts) * 100))
}

// BadgeCategory groups badges for display
type BadgeCategory string

const (
	BadgeCategoryModule      BadgeCategory = "module"
	BadgeCategoryAchievement BadgeCategory = "achievement"
	BadgeCategorySpecial     BadgeCategory = "special"
	BadgeCategoryStreak      BadgeCategory = "streak"
	BadgeCategoryPerfect     BadgeCategory = "perfect"
)

// BadgeRarity indicates how hard a badge is to earn
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge is a one-time award. A badge id appears at most once per user.
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url,omitempty"`
	Category    BadgeCategory `json:"category"`
	Rarity      BadgeRarity   `json:"rarity"`
	EarnedAt    time.Time     `json:"earned_at"`
}

// Achievement tracks progress toward a long-running goal. EarnedAt is set
// exactly once, at the first transition to Completed, and never cleared.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Progress    int        `json:"progress"`
	Target      int        `json:"target"`
	Completed   bool       `json:"completed"`
	EarnedAt    *time.Time `json:"earned_at"`
	Category    string     `json:"category,omitempty"`
}

// StatBlock holds cross-module counters used by badge and achievement rules
type StatBlock struct {
	PhishingEmailsIdentified int       `json:"phishing_emails_identified"`
	ScamCallsAvoided         int       `json:"scam_calls_avoided"`
	MFASetupCompleted        int       `json:"mfa_setup_completed"`
	TotalTimeSpent           float64   `json:"total_time_spent"` // seconds
	LoginStreak              int       `json:"login_streak"`
	LastLoginDate            time.Time `json:"last_login_date"`
	PerfectScores            int       `json:"perfect_scores"`
	SimulationsPlayed        int       `json:"simulations_played"`
	AverageAccuracy          int       `json:"average_accuracy"`
	LongestStreak            int       `json:"longest_streak"`
}

// ProgressState is the user's full gamification record. The core packages
// treat it as a snapshot and return computed results; the application layer
// owns mutation and persistence.
type ProgressState struct {
	Points           int                       `json:"points"`
	Level            int                       `json:"level"`
	XP               XP                        `json:"xp"`
	CompletedModules []string                  `json:"completed_modules"`
	ModuleProgress   map[string]ModuleProgress `json:"module_progress"`
	Badges           []Badge                   `json:"badges"`
	Achievements     []Achievement             `json:"achievements"`
	Stats            StatBlock                 `json:"stats"`
	TotalTimeSpent   float64                   `json:"total_time_spent"`
}

// NewProgressState returns the zero-value record created on first activity
func NewProgressState(now time.Time) ProgressState {
	return ProgressState{
		Level:            1,
		XP:               XP{Current: 0, ToNextLevel: 1000},
		CompletedModules: []string{},
		ModuleProgress:   map[string]ModuleProgress{},
		Badges:           []Badge{},
		Achievements:     []Achievement{},
		Stats:            StatBlock{LastLoginDate: now},
	}
}

// HasBadge reports whether the badge id is already owned
func (p *ProgressState) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// HasCompletedModule reports whether the module id is recorded as completed
func (p *ProgressState) HasCompletedModule(moduleID string) bool {
	for _, m := range p.CompletedModules {
		if m == moduleID {
			return true
		}
	}
	return false
}

// MergeBadges appends qualified badges that the user does not own yet,
// stamping EarnedAt. Re-qualifying an owned badge is a no-op, which makes
// repeated evaluation idempotent. Returns only the newly added badges.
func (p *ProgressState) MergeBadges(candidates []Badge, now time.Time) []Badge {
	added := make([]Badge, 0)
	for _, b := range candidates {
		if p.HasBadge(b.ID) {
			continue
		}
		b.EarnedAt = now
		p.Badges = append(p.Badges, b)
		added = append(added, b)
	}
	return added
}

// MergeAchievements folds a freshly evaluated achievement set into the
// stored one. Progress and Completed are overwritten; EarnedAt is set on
// the first completion and never cleared afterwards. Returns the
// achievements currently completed.
func (p *ProgressState) MergeAchievements(evaluated []Achievement, now time.Time) []Achievement {
	completed := make([]Achievement, 0)
	for _, a := range evaluated {
		idx := -1
		for i := range p.Achievements {
			if p.Achievements[i].ID == a.ID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			existing := &p.Achievements[idx]
			existing.Progress = a.Progress
			existing.Target = a.Target
			existing.Completed = a.Completed
			if a.Completed && existing.EarnedAt == nil {
				t := now
				existing.EarnedAt = &t
			}
			if existing.Completed {
				completed = append(completed, *existing)
			}
			continue
		}
		if a.Completed {
			t := now
			a.EarnedAt = &t
		}
		p.Achievements = append(p.Achievements, a)
		if a.Completed {
			completed = append(completed, a)
		}
	}
	return completed
}

// RecomputeAverageAccuracy recalculates the accuracy stat across all modules
func (p *ProgressState) RecomputeAverageAccuracy() {
	totalCorrect := 0
	totalAttempts := 0
	for _, mp := range p.ModuleProgress {
		totalCorrect += mp.CorrectAnswers
		totalAttempts += mp.TotalAttempts
	}
	if totalAttempts > 0 {
		p.Stats.AverageAccuracy = int(math.Round(float64(totalCorrect) / float64(totalAttempts) * 100))
	} else {
		p.Stats.AverageAccuracy = 0
	}
}

// User is a platform account with its gamification record.
// Version backs optimistic concurrency on progress updates.
type User struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name,omitempty"`
	LastName  string        `json:"last_name,omitempty"`
	Progress  ProgressState `json:"progress"`
	Version   int           `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

// Feedback is the explanatory text returned after a simulation submission
type Feedback struct {
	Type          string `json:"type"`
	Message       string `json:"message"`
	Explanation   string `json:"explanation"`
	CorrectAction string `json:"correct_action,omitempty"`
}

// LeaderboardEntry is one row of the points leaderboard
type LeaderboardEntry struct {
	Email      string `json:"email"`
	Points     int    `json:"points"`
	Level      int    `json:"level"`
	BadgeCount int    `json:"badge_count"`
}

// SubmissionStats aggregates a user's spam submission history
type SubmissionStats struct {
	TotalSubmissions   int `json:"total_submissions"`
	TotalPoints        int `json:"total_points"`
	CorrectAssessments int `json:"correct_assessments"`
	MaliciousEmails    int `json:"malicious_emails"`
	LegitimateEmails   int `json:"legitimate_emails"`
	Accuracy           int `json:"accuracy"`
}

// ThreatTypeStat is one row of the platform-wide threat breakdown
type ThreatTypeStat struct {
	ThreatType   ThreatType `json:"threat_type"`
	Count        int        `json:"count"`
	AvgRiskScore float64    `json:"avg_risk_score"`
}
