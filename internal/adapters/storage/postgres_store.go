package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

// PostgresStore implements ports.Storage for PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage instance
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	// In production, should be set based on workload
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InitSchema creates database tables if they don't exist
// In production, use proper migration tools
func (s *PostgresStore) InitSchema() error {
	schema := `
	-- ============================================================================
	-- USERS TABLE
	-- ============================================================================
	-- One row per account. The full gamification record lives in the progress
	-- JSONB column as a single snapshot.
	--
	-- Why JSONB instead of normalized tables:
	-- - The progress record is always read and written as a whole by the three
	--   training flows; there are no queries that join into its interior except
	--   the leaderboard, which is served by an expression index below.
	-- - Badge and achievement lists are small (dozens of entries at most).
	--
	-- Production: split badges/achievements into their own tables once
	-- cross-user queries ("who owns badge X") are needed.
	--
	-- The version column implements optimistic concurrency: every progress
	-- write checks the version it read and increments it. This prevents lost
	-- updates when a user rapidly submits two simulations.
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(254) NOT NULL UNIQUE,
		first_name VARCHAR(100),
		last_name VARCHAR(100),
		progress JSONB NOT NULL,
		version INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT NOW()
	);

	-- Backs TopUsersByPoints without scanning every row's JSONB
	CREATE INDEX IF NOT EXISTS idx_users_points ON users (((progress->>'points')::int) DESC);

	-- ============================================================================
	-- SIMULATIONS TABLE
	-- ============================================================================
	-- Practice exercise catalog, seeded at startup. UNIQUE(module_id, title)
	-- makes seeding idempotent across restarts (ON CONFLICT DO NOTHING).
	CREATE TABLE IF NOT EXISTS simulations (
		id UUID PRIMARY KEY,
		module_id VARCHAR(50) NOT NULL,
		title VARCHAR(200) NOT NULL,
		difficulty VARCHAR(20) NOT NULL,
		points INTEGER NOT NULL,
		is_malicious BOOLEAN NOT NULL,
		content TEXT,
		explanation TEXT,
		created_at TIMESTAMP DEFAULT NOW(),
		UNIQUE(module_id, title)
	);

	-- Backs ListSimulations and the COUNT behind GetRandomSimulation
	CREATE INDEX IF NOT EXISTS idx_simulations_module ON simulations(module_id, difficulty);

	-- ============================================================================
	-- SPAM_SUBMISSIONS TABLE
	-- ============================================================================
	-- One row per analyzed email. The analysis column stores the immutable
	-- AnalysisResult snapshot exactly as produced, so history views replay
	-- what the user saw even if the rule set changes later.
	--
	-- JSONB for email_content/analysis/user_assessment: these are always read
	-- alongside the row, and threat stats only need analysis->>'threat_type'
	-- and analysis->>'risk_score', which JSONB extraction covers.
	CREATE TABLE IF NOT EXISTS spam_submissions (
		id UUID PRIMARY KEY,
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		email_content JSONB NOT NULL,
		analysis JSONB NOT NULL,
		user_assessment JSONB NOT NULL,
		points_awarded INTEGER NOT NULL,
		points_reason TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'analyzed',
		created_at TIMESTAMP DEFAULT NOW()
	);

	-- Per-user history, newest first
	CREATE INDEX IF NOT EXISTS idx_submissions_user ON spam_submissions(user_id, created_at DESC);
	-- Backs GetThreatTypeStats over analyzed submissions
	CREATE INDEX IF NOT EXISTS idx_submissions_status ON spam_submissions(status, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateUser inserts a new user with its initial progress snapshot
func (s *PostgresStore) CreateUser(ctx context.Context, user *domain.User) error {
	progressJSON, err := json.Marshal(user.Progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	query := `
		INSERT INTO users (id, email, first_name, last_name, progress, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName,
		progressJSON, user.Version, user.CreatedAt,
	)
	return err
}

// GetUser retrieves a user by ID
func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, first_name, last_name, progress, version, created_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetUserByEmail retrieves a user by email
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, first_name, last_name, progress, version, created_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresStore) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var firstName, lastName sql.NullString
	var progressJSON []byte

	err := row.Scan(
		&user.ID, &user.Email, &firstName, &lastName,
		&progressJSON, &user.Version, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName.String
	user.LastName = lastName.String
	if err := json.Unmarshal(progressJSON, &user.Progress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
	}

	return user, nil
}

// UpdateUserProgress writes the progress snapshot with an optimistic
// version check. The in-memory Version is bumped on success so the caller
// can keep writing against the same User value.
func (s *PostgresStore) UpdateUserProgress(ctx context.Context, user *domain.User) error {
	progressJSON, err := json.Marshal(user.Progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	query := `
		UPDATE users
		SET progress = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`
	res, err := s.db.ExecContext(ctx, query, progressJSON, user.ID, user.Version)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrVersionConflict
	}

	user.Version++
	return nil
}

// TopUsersByPoints returns the leaderboard, highest points first
func (s *PostgresStore) TopUsersByPoints(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT email,
		       COALESCE((progress->>'points')::int, 0),
		       COALESCE((progress->>'level')::int, 1),
		       COALESCE(jsonb_array_length(progress->'badges'), 0)
		FROM users
		ORDER BY 2 DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Email, &e.Points, &e.Level, &e.BadgeCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CreateSimulation inserts a simulation; duplicates by (module, title) are
// silently skipped so seeding is idempotent
func (s *PostgresStore) CreateSimulation(ctx context.Context, sim *domain.Simulation) error {
	query := `
		INSERT INTO simulations (id, module_id, title, difficulty, points, is_malicious, content, explanation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (module_id, title) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		sim.ID, sim.ModuleID, sim.Title, sim.Difficulty, sim.Points,
		sim.IsMalicious, sim.Content, sim.Explanation, sim.CreatedAt,
	)
	return err
}

// GetSimulation retrieves a simulation by ID
func (s *PostgresStore) GetSimulation(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	query := `
		SELECT id, module_id, title, difficulty, points, is_malicious, content, explanation, created_at
		FROM simulations
		WHERE id = $1
	`
	sim := &domain.Simulation{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sim.ID, &sim.ModuleID, &sim.Title, &sim.Difficulty, &sim.Points,
		&sim.IsMalicious, &sim.Content, &sim.Explanation, &sim.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sim, nil
}

// ListSimulations returns simulations for a module, newest first.
// difficulty empty means all difficulties.
func (s *PostgresStore) ListSimulations(ctx context.Context, moduleID, difficulty string, limit int) ([]domain.Simulation, error) {
	query := `
		SELECT id, module_id, title, difficulty, points, is_malicious, content, explanation, created_at
		FROM simulations
		WHERE module_id = $1 AND ($2 = '' OR difficulty = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, moduleID, difficulty, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sims := make([]domain.Simulation, 0)
	for rows.Next() {
		var sim domain.Simulation
		err := rows.Scan(
			&sim.ID, &sim.ModuleID, &sim.Title, &sim.Difficulty, &sim.Points,
			&sim.IsMalicious, &sim.Content, &sim.Explanation, &sim.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}

	return sims, rows.Err()
}

// GetRandomSimulation picks a random simulation via count + random offset.
// O(n) in the offset, and the count can shift between the two queries under
// concurrent writes; acceptable for a practice-exercise picker.
func (s *PostgresStore) GetRandomSimulation(ctx context.Context, moduleID, difficulty string) (*domain.Simulation, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM simulations
		WHERE module_id = $1 AND ($2 = '' OR difficulty = $2)
	`
	var count int
	if err := s.db.QueryRowContext(ctx, countQuery, moduleID, difficulty).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	query := `
		SELECT id, module_id, title, difficulty, points, is_malicious, content, explanation, created_at
		FROM simulations
		WHERE module_id = $1 AND ($2 = '' OR difficulty = $2)
		ORDER BY created_at DESC
		OFFSET $3
		LIMIT 1
	`
	sim := &domain.Simulation{}
	err := s.db.QueryRowContext(ctx, query, moduleID, difficulty, rand.Intn(count)).Scan(
		&sim.ID, &sim.ModuleID, &sim.Title, &sim.Difficulty, &sim.Points,
		&sim.IsMalicious, &sim.Content, &sim.Explanation, &sim.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sim, nil
}

// CreateSpamSubmission inserts an analyzed spam submission
func (s *PostgresStore) CreateSpamSubmission(ctx context.Context, sub *domain.SpamSubmission) error {
	contentJSON, err := json.Marshal(sub.EmailContent)
	if err != nil {
		return fmt.Errorf("failed to marshal email content: %w", err)
	}
	analysisJSON, err := json.Marshal(sub.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	assessmentJSON, err := json.Marshal(sub.UserAssessment)
	if err != nil {
		return fmt.Errorf("failed to marshal user assessment: %w", err)
	}

	query := `
		INSERT INTO spam_submissions (
			id, user_id, email_content, analysis, user_assessment,
			points_awarded, points_reason, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		sub.ID, sub.UserID, contentJSON, analysisJSON, assessmentJSON,
		sub.PointsAwarded, sub.PointsReason, sub.Status, sub.CreatedAt,
	)
	return err
}

// ListSpamSubmissions returns a page of a user's submissions, newest first
func (s *PostgresStore) ListSpamSubmissions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.SpamSubmission, error) {
	query := `
		SELECT id, user_id, email_content, analysis, user_assessment,
		       points_awarded, points_reason, status, created_at
		FROM spam_submissions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]domain.SpamSubmission, 0)
	for rows.Next() {
		var sub domain.SpamSubmission
		var contentJSON, analysisJSON, assessmentJSON []byte
		var reason sql.NullString

		err := rows.Scan(
			&sub.ID, &sub.UserID, &contentJSON, &analysisJSON, &assessmentJSON,
			&sub.PointsAwarded, &reason, &sub.Status, &sub.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		sub.PointsReason = reason.String
		json.Unmarshal(contentJSON, &sub.EmailContent)
		json.Unmarshal(analysisJSON, &sub.Analysis)
		json.Unmarshal(assessmentJSON, &sub.UserAssessment)

		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// CountSpamSubmissions returns the total submission count for a user
func (s *PostgresStore) CountSpamSubmissions(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM spam_submissions WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}

// GetSubmissionStats aggregates a user's submission history
func (s *PostgresStore) GetSubmissionStats(ctx context.Context, userID uuid.UUID) (*domain.SubmissionStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(points_awarded), 0),
		       COUNT(*) FILTER (WHERE (user_assessment->>'is_spam')::bool = (analysis->>'is_malicious')::bool),
		       COUNT(*) FILTER (WHERE (analysis->>'is_malicious')::bool),
		       COUNT(*) FILTER (WHERE NOT (analysis->>'is_malicious')::bool)
		FROM spam_submissions
		WHERE user_id = $1
	`
	stats := &domain.SubmissionStats{}
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalSubmissions, &stats.TotalPoints, &stats.CorrectAssessments,
		&stats.MaliciousEmails, &stats.LegitimateEmails,
	)
	if err != nil {
		return nil, err
	}

	if stats.TotalSubmissions > 0 {
		stats.Accuracy = int(float64(stats.CorrectAssessments)/float64(stats.TotalSubmissions)*100 + 0.5)
	}
	return stats, nil
}

// GetThreatTypeStats returns the platform-wide threat breakdown for
// analyzed submissions, most common first
func (s *PostgresStore) GetThreatTypeStats(ctx context.Context) ([]domain.ThreatTypeStat, error) {
	query := `
		SELECT analysis->>'threat_type',
		       COUNT(*),
		       AVG((analysis->>'risk_score')::numeric)
		FROM spam_submissions
		WHERE status = 'analyzed'
		GROUP BY 1
		ORDER BY 2 DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.ThreatTypeStat, 0)
	for rows.Next() {
		var st domain.ThreatTypeStat
		if err := rows.Scan(&st.ThreatType, &st.Count, &st.AvgRiskScore); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}

	return stats, rows.Err()
}
