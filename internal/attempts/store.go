package attempts

import (
	"database/sql"
	"fmt"

	"github.com/monster-math/backend/internal/models"
)

// Store is the persistence surface the recorder and aggregator need.
// The SQL implementation lives below; tests swap in an in-memory fake.
type Store interface {
	// SaveAttempt appends one immutable row and fills in its ID.
	SaveAttempt(a *models.Attempt) error
	// GetSummary aggregates over the user's attempts, optionally filtered
	// by game type (models.GameTypeAll means no filter). Accuracy is left
	// at zero; the service derives it.
	GetSummary(userID int64, gameType string) (models.StatsSummary, error)
	// RecentAttempts returns up to limit attempts, newest first, ties
	// broken by insertion order.
	RecentAttempts(userID int64, gameType string, limit int) ([]models.Attempt, error)
	GetUsername(userID int64) (string, error)
}

type sqlStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) SaveAttempt(a *models.Attempt) error {
	err := s.db.QueryRow(
		`INSERT INTO puzzle_attempts (user_id, game_type, question, time_taken_seconds, solved_correctly, timestamp_utc)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		a.UserID, a.GameType, a.Question, a.TimeTakenSeconds, a.SolvedCorrectly, a.TimestampUTC,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (s *sqlStore) GetSummary(userID int64, gameType string) (models.StatsSummary, error) {
	var summary models.StatsSummary

	query := `SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE solved_correctly),
			COALESCE(AVG(time_taken_seconds), 0),
			COALESCE(MIN(time_taken_seconds), 0)
		 FROM puzzle_attempts WHERE user_id = $1`

	var err error
	if gameType != models.GameTypeAll {
		err = s.db.QueryRow(query+` AND game_type = $2`, userID, gameType).
			Scan(&summary.TotalAttempts, &summary.CorrectAttempts, &summary.AvgTime, &summary.BestTime)
	} else {
		err = s.db.QueryRow(query, userID).
			Scan(&summary.TotalAttempts, &summary.CorrectAttempts, &summary.AvgTime, &summary.BestTime)
	}
	if err != nil {
		return models.StatsSummary{}, fmt.Errorf("stats summary: %w", err)
	}
	return summary, nil
}

func (s *sqlStore) RecentAttempts(userID int64, gameType string, limit int) ([]models.Attempt, error) {
	selectCols := `id, user_id, game_type, question, time_taken_seconds, solved_correctly, timestamp_utc`

	var rows *sql.Rows
	var err error
	if gameType != models.GameTypeAll {
		rows, err = s.db.Query(
			fmt.Sprintf(`SELECT %s FROM puzzle_attempts
			 WHERE user_id = $1 AND game_type = $2
			 ORDER BY timestamp_utc DESC, id DESC LIMIT $3`, selectCols),
			userID, gameType, limit,
		)
	} else {
		rows, err = s.db.Query(
			fmt.Sprintf(`SELECT %s FROM puzzle_attempts
			 WHERE user_id = $1
			 ORDER BY timestamp_utc DESC, id DESC LIMIT $2`, selectCols),
			userID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.GameType, &a.Question,
			&a.TimeTakenSeconds, &a.SolvedCorrectly, &a.TimestampUTC); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *sqlStore) GetUsername(userID int64) (string, error) {
	var username string
	err := s.db.QueryRow(`SELECT username FROM users WHERE id = $1`, userID).Scan(&username)
	if err != nil {
		return "", fmt.Errorf("get username: %w", err)
	}
	return username, nil
}
