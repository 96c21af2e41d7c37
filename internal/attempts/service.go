package attempts

import (
	"time"

	"github.com/monster-math/backend/internal/models"
)

// recentAttemptsLimit caps the history list returned with stats.
const recentAttemptsLimit = 20

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// RecordAttempt appends one attempt stamped with the server's UTC clock.
// Every call creates a new row — there is no deduplication, so the
// client must submit each puzzle at most once.
func (s *Service) RecordAttempt(userID int64, req models.SaveAttemptRequest) (*models.Attempt, error) {
	gameType := req.GameType
	if gameType == "" {
		gameType = models.DefaultGameType
	}

	attempt := models.Attempt{
		UserID:           userID,
		GameType:         gameType,
		Question:         *req.Question,
		TimeTakenSeconds: *req.TimeTakenSeconds,
		SolvedCorrectly:  *req.SolvedCorrectly,
		TimestampUTC:     time.Now().UTC(),
	}

	if err := s.store.SaveAttempt(&attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

// GetStats builds the summary plus the recent-attempts list for one user.
// gameType narrows the log to one variant; "all" (or empty) means no
// filter. An empty log yields all-zero stats, never a division fault.
func (s *Service) GetStats(userID int64, gameType string) (*models.StatsResponse, error) {
	if gameType == "" {
		gameType = models.GameTypeAll
	}

	summary, err := s.store.GetSummary(userID, gameType)
	if err != nil {
		return nil, err
	}
	if summary.TotalAttempts > 0 {
		summary.Accuracy = float64(summary.CorrectAttempts) / float64(summary.TotalAttempts) * 100
	}

	recent, err := s.store.RecentAttempts(userID, gameType, recentAttemptsLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.Attempt{}
	}

	username, err := s.store.GetUsername(userID)
	if err != nil {
		return nil, err
	}

	return &models.StatsResponse{
		Stats:          summary,
		RecentAttempts: recent,
		Username:       username,
	}, nil
}
