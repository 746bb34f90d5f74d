package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/cyberacademy/awareness-platform/internal/domain"
	"github.com/cyberacademy/awareness-platform/internal/domain/gamify"
	"github.com/cyberacademy/awareness-platform/internal/domain/spamscan"
	"github.com/cyberacademy/awareness-platform/internal/ports"
)

// TrainingService orchestrates the three training flows: module
// completion, simulation submission, and spam email submission. It owns
// the read-modify-write of the user's ProgressState; all rule evaluation
// is delegated to the pure gamify and spamscan packages.
type TrainingService struct {
	storage ports.Storage
}

// NewTrainingService creates a new training service with dependency injection
func NewTrainingService(storage ports.Storage) *TrainingService {
	return &TrainingService{storage: storage}
}

// ModuleCompletion is the input of the module-completion flow
type ModuleCompletion struct {
	ModuleID       string
	Score          int
	CorrectAnswers int
	TotalAttempts  int
	TimeSpent      float64 // seconds
}

// ModuleCompletionResult is returned after a completed module is recorded
type ModuleCompletionResult struct {
	PointsEarned    int                  `json:"points_earned"`
	NewBadges       []domain.Badge       `json:"new_badges"`
	NewAchievements []domain.Achievement `json:"new_achievements"`
	UpdatedProgress domain.ProgressState `json:"updated_progress"`
}

// CompleteModule records a finished training module: points, level,
// module progress, stats, badges and achievements, in that order.
// Numeric inputs are defensively normalized; a missing module id is
// rejected before any state changes.
func (s *TrainingService) CompleteModule(ctx context.Context, userID uuid.UUID, req ModuleCompletion) (*ModuleCompletionResult, error) {
	if req.ModuleID == "" {
		return nil, domain.NewValidationError("moduleId", "module id is required")
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, &domain.NotFoundError{Resource: "user", ID: userID.String()}
	}

	now := time.Now()
	progress := &user.Progress

	safeScore := req.Score
	if safeScore < 0 {
		safeScore = 0
	}
	safeCorrect := req.CorrectAnswers
	if safeCorrect < 0 {
		safeCorrect = 0
	}
	safeAttempts := req.TotalAttempts
	if safeAttempts <= 0 {
		safeAttempts = safeCorrect
		if safeAttempts < 1 {
			safeAttempts = 1
		}
	}
	safeTime := req.TimeSpent
	if safeTime < 0 {
		safeTime = 0
	}

	mp := progress.ModuleProgress[req.ModuleID]
	mp.CorrectAnswers = safeCorrect
	mp.TotalAttempts = safeAttempts
	mp.RecomputeScore()
	mp.LastAttemptDate = now
	progress.ModuleProgress[req.ModuleID] = mp

	if !progress.HasCompletedModule(req.ModuleID) {
		progress.CompletedModules = append(progress.CompletedModules, req.ModuleID)
	}

	pointsEarned := gamify.ModulePoints(safeScore, safeCorrect, safeAttempts)
	progress.Points += pointsEarned
	progress.TotalTimeSpent += safeTime

	switch req.ModuleID {
	case domain.ModulePhishingSpotter:
		progress.Stats.PhishingEmailsIdentified += safeCorrect
	case domain.ModuleScamRecognizer:
		progress.Stats.ScamCallsAvoided += safeCorrect
	case domain.ModuleMFASetup:
		progress.Stats.MFASetupCompleted++
	}

	progress.Level, progress.XP = gamify.UpdateLevel(progress.Points)

	newBadges := progress.MergeBadges(gamify.EvaluateBadges(*progress), now)
	completed := progress.MergeAchievements(gamify.EvaluateAchievements(*progress), now)

	if err := s.storage.UpdateUserProgress(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	for _, b := range newBadges {
		log.Printf("Badge earned by %s: %s", user.Email, b.Name)
	}

	return &ModuleCompletionResult{
		PointsEarned:    pointsEarned,
		NewBadges:       newBadges,
		NewAchievements: completed,
		UpdatedProgress: *progress,
	}, nil
}

// SimulationResult is returned after a simulation submission
type SimulationResult struct {
	PointsEarned    int                  `json:"points_earned"`
	NewBadges       []domain.Badge       `json:"new_badges"`
	NewAchievements []domain.Achievement `json:"new_achievements"`
	UpdatedProgress domain.ProgressState `json:"updated_progress"`
	Feedback        domain.Feedback      `json:"feedback"`
}

// SubmitSimulation scores one practice attempt and rolls it into the
// user's progress: per-module counters, accuracy, level, badges and
// achievements, plus explanatory feedback.
func (s *TrainingService) SubmitSimulation(ctx context.Context, userID, simulationID uuid.UUID, userAction string, timeSpent float64, isCorrect bool) (*SimulationResult, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, &domain.NotFoundError{Resource: "user", ID: userID.String()}
	}

	sim, err := s.storage.GetSimulation(ctx, simulationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation: %w", err)
	}
	if sim == nil {
		return nil, &domain.NotFoundError{Resource: "simulation", ID: simulationID.String()}
	}

	now := time.Now()
	progress := &user.Progress
	if timeSpent < 0 {
		timeSpent = 0
	}

	pointsEarned := gamify.SimulationPoints(sim.Points, isCorrect, timeSpent)

	mp := progress.ModuleProgress[sim.ModuleID]
	mp.TotalAttempts++
	mp.LastAttemptDate = now
	if isCorrect {
		mp.CorrectAnswers++
	}
	mp.RecomputeScore()

	if isCorrect {
		switch sim.ModuleID {
		case domain.ModulePhishingSpotter:
			progress.Stats.PhishingEmailsIdentified++
			mp.SimulationsCompleted++
			if mp.Score == 100 {
				mp.PerfectRuns++
				progress.Stats.PerfectScores++
			}
		case domain.ModuleScamRecognizer:
			progress.Stats.ScamCallsAvoided++
			mp.ScamsIdentified++
		case domain.ModuleMFASetup:
			if userAction == "setup-completed" {
				progress.Stats.MFASetupCompleted++
				mp.PlatformsSetup++
				mp.SetupCompleted = true
			}
		}
	}
	progress.ModuleProgress[sim.ModuleID] = mp

	progress.Points += pointsEarned
	progress.Stats.SimulationsPlayed++
	progress.Stats.TotalTimeSpent += timeSpent
	progress.RecomputeAverageAccuracy()

	progress.Level, progress.XP = gamify.UpdateLevel(progress.Points)

	newBadges := progress.MergeBadges(gamify.EvaluateBadges(*progress), now)
	completed := progress.MergeAchievements(gamify.EvaluateAchievements(*progress), now)

	if err := s.storage.UpdateUserProgress(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	return &SimulationResult{
		PointsEarned:    pointsEarned,
		NewBadges:       newBadges,
		NewAchievements: completed,
		UpdatedProgress: *progress,
		Feedback:        gamify.GenerateFeedback(*sim, isCorrect),
	}, nil
}

// SpamSubmissionResult is returned after a spam email submission
type SpamSubmissionResult struct {
	SubmissionID uuid.UUID             `json:"submission_id"`
	Analysis     domain.AnalysisResult `json:"analysis"`
	PointsEarned int                   `json:"points_earned"`
	Reason       string                `json:"reason"`
	NewBadges    []domain.Badge        `json:"new_badges"`
}

// SubmitSpamEmail analyzes a suspect email, persists the submission with
// its analysis snapshot, and awards points and badges for the assessment.
// All four email content fields and the assessment itself are required;
// they are never silently defaulted.
func (s *TrainingService) SubmitSpamEmail(ctx context.Context, userID uuid.UUID, content domain.EmailContent, assessment *domain.UserAssessment) (*SpamSubmissionResult, error) {
	switch {
	case content.Subject == "":
		return nil, domain.NewValidationError("subject", "email subject is required")
	case content.Sender == "":
		return nil, domain.NewValidationError("sender", "sender name is required")
	case content.SenderEmail == "":
		return nil, domain.NewValidationError("senderEmail", "sender email is required")
	case content.Body == "":
		return nil, domain.NewValidationError("body", "email body is required")
	case assessment == nil:
		return nil, domain.NewValidationError("userAssessment", "user assessment is required")
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, &domain.NotFoundError{Resource: "user", ID: userID.String()}
	}

	now := time.Now()
	if content.ReceivedDate.IsZero() {
		content.ReceivedDate = now
	}

	// Pure domain logic, no I/O
	analysis := spamscan.AnalyzeEmail(content)
	pointsEarned, reason := gamify.SpamSubmissionPoints(analysis, assessment.IsSpam)

	sub := domain.SpamSubmission{
		ID:             uuid.New(),
		UserID:         user.ID,
		EmailContent:   content,
		Analysis:       analysis,
		UserAssessment: *assessment,
		PointsAwarded:  pointsEarned,
		PointsReason:   reason,
		Status:         "analyzed",
		CreatedAt:      now,
	}
	if err := s.storage.CreateSpamSubmission(ctx, &sub); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	progress := &user.Progress
	progress.Points += pointsEarned
	progress.Stats.SimulationsPlayed++

	// The scam counter doubles as the malware-detection counter; the badge
	// rules were written against this reuse.
	switch analysis.ThreatType {
	case domain.ThreatPhishing:
		progress.Stats.PhishingEmailsIdentified++
	case domain.ThreatMalware:
		progress.Stats.ScamCallsAvoided++
	}

	newBadges := progress.MergeBadges(gamify.EvaluateSpamBadges(*progress, sub), now)

	if err := s.storage.UpdateUserProgress(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	if analysis.IsMalicious {
		log.Printf("Malicious email submitted by %s: risk %d (%s), %d keywords",
			user.Email, analysis.RiskScore, analysis.ThreatType, len(analysis.DetectedKeywords))
	}

	return &SpamSubmissionResult{
		SubmissionID: sub.ID,
		Analysis:     analysis,
		PointsEarned: pointsEarned,
		Reason:       reason,
		NewBadges:    newBadges,
	}, nil
}

// RegisterUser creates an account with a zeroed progress record
func (s *TrainingService) RegisterUser(ctx context.Context, email, firstName, lastName string) (*domain.User, error) {
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Progress:  domain.NewProgressState(now),
		CreatedAt: now,
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// CreateUser is an upsert-style no-op on duplicate email; reload so the
	// caller always gets the stored record.
	stored, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return stored, nil
}

// GetProgress returns a user's current gamification record
func (s *TrainingService) GetProgress(ctx context.Context, userID uuid.UUID) (*domain.ProgressState, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, &domain.NotFoundError{Resource: "user", ID: userID.String()}
	}
	return &user.Progress, nil
}

// GetLeaderboard returns the top users by points
func (s *TrainingService) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.storage.TopUsersByPoints(ctx, limit)
}

// GetRandomSimulation picks a random practice exercise for a module
func (s *TrainingService) GetRandomSimulation(ctx context.Context, moduleID, difficulty string) (*domain.Simulation, error) {
	sim, err := s.storage.GetRandomSimulation(ctx, moduleID, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to pick simulation: %w", err)
	}
	if sim == nil {
		return nil, &domain.NotFoundError{Resource: "simulation", ID: moduleID}
	}
	return sim, nil
}

// SubmissionHistory is one page of a user's spam submissions
type SubmissionHistory struct {
	Submissions []domain.SpamSubmission `json:"submissions"`
	Page        int                     `json:"page"`
	TotalPages  int                     `json:"total_pages"`
	HasNext     bool                    `json:"has_next"`
	HasPrev     bool                    `json:"has_prev"`
}

// GetSubmissionHistory returns a page of the user's spam submissions
func (s *TrainingService) GetSubmissionHistory(ctx context.Context, userID uuid.UUID, page, limit int) (*SubmissionHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	subs, err := s.storage.ListSpamSubmissions(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	total, err := s.storage.CountSpamSubmissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	totalPages := (total + limit - 1) / limit
	return &SubmissionHistory{
		Submissions: subs,
		Page:        page,
		TotalPages:  totalPages,
		HasNext:     offset+len(subs) < total,
		HasPrev:     page > 1,
	}, nil
}

// GetSubmissionStats returns a user's spam submission aggregates
func (s *TrainingService) GetSubmissionStats(ctx context.Context, userID uuid.UUID) (*domain.SubmissionStats, error) {
	return s.storage.GetSubmissionStats(ctx, userID)
}

// GetThreatTypeStats returns the platform-wide threat breakdown
func (s *TrainingService) GetThreatTypeStats(ctx context.Context) ([]domain.ThreatTypeStat, error) {
	return s.storage.GetThreatTypeStats(ctx)
}
