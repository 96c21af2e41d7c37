package models

import "time"

// DefaultGameType labels attempts when the client doesn't send one.
// A single variant exists today; the column is free-form for future modes.
const DefaultGameType = "arithmetic"

// GameTypeAll is the stats filter value meaning "no filter".
const GameTypeAll = "all"

// Attempt is one persisted answer submission. Rows are append-only: the
// recorder never updates or deletes them.
type Attempt struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"-"`
	GameType         string    `json:"game_type"`
	Question         string    `json:"question"`
	TimeTakenSeconds float64   `json:"time_taken_seconds"`
	SolvedCorrectly  bool      `json:"solved_correctly"`
	TimestampUTC     time.Time `json:"timestamp_utc"`
}

// SaveAttemptRequest uses pointers for the required fields so a missing
// key can be told apart from a zero value at the boundary.
type SaveAttemptRequest struct {
	GameType         string   `json:"game_type"`
	Question         *string  `json:"question"`
	TimeTakenSeconds *float64 `json:"time_taken_seconds"`
	SolvedCorrectly  *bool    `json:"solved_correctly"`
}

// StatsSummary is derived from the attempt log on demand, never stored.
// Accuracy is 0 when TotalAttempts is 0, as are the time aggregates.
type StatsSummary struct {
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
	AvgTime         float64 `json:"avg_time"`
	BestTime        float64 `json:"best_time"`
}

type StatsResponse struct {
	Stats          StatsSummary `json:"stats"`
	RecentAttempts []Attempt    `json:"recent_attempts"`
	Username       string       `json:"username"`
}
