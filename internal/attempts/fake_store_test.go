package attempts

import (
	"fmt"
	"sort"

	"github.com/monster-math/backend/internal/models"
)

// fakeStore is an in-memory Store that mirrors the SQL aggregation, so
// service and handler tests run without a database.
type fakeStore struct {
	attempts  []models.Attempt
	usernames map[int64]string
	nextID    int64
	saveErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{usernames: map[int64]string{1: "alice"}}
}

func (f *fakeStore) matching(userID int64, gameType string) []models.Attempt {
	var out []models.Attempt
	for _, a := range f.attempts {
		if a.UserID != userID {
			continue
		}
		if gameType != models.GameTypeAll && a.GameType != gameType {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (f *fakeStore) SaveAttempt(a *models.Attempt) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.nextID++
	a.ID = f.nextID
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeStore) GetSummary(userID int64, gameType string) (models.StatsSummary, error) {
	var summary models.StatsSummary
	var totalTime float64

	for _, a := range f.matching(userID, gameType) {
		summary.TotalAttempts++
		if a.SolvedCorrectly {
			summary.CorrectAttempts++
		}
		totalTime += a.TimeTakenSeconds
		if summary.BestTime == 0 || a.TimeTakenSeconds < summary.BestTime {
			summary.BestTime = a.TimeTakenSeconds
		}
	}
	if summary.TotalAttempts > 0 {
		summary.AvgTime = totalTime / float64(summary.TotalAttempts)
	}
	return summary, nil
}

func (f *fakeStore) RecentAttempts(userID int64, gameType string, limit int) ([]models.Attempt, error) {
	matched := f.matching(userID, gameType)

	// Newest first, insertion order breaking timestamp ties.
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].TimestampUTC.Equal(matched[j].TimestampUTC) {
			return matched[i].TimestampUTC.After(matched[j].TimestampUTC)
		}
		return matched[i].ID > matched[j].ID
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeStore) GetUsername(userID int64) (string, error) {
	name, ok := f.usernames[userID]
	if !ok {
		return "", fmt.Errorf("get username: no user %d", userID)
	}
	return name, nil
}
