package game

import "github.com/monster-math/backend/internal/models"

// pointsPerSolve matches the original client scoring.
const pointsPerSolve = 10

// ApplyResult folds one answer result into caller-owned session state.
// A correct answer scores and extends the streak; a miss resets the
// streak and leaves score and solved count untouched.
func ApplyResult(s models.GameSession, correct bool) models.GameSession {
	if correct {
		s.Score += pointsPerSolve
		s.Streak++
		s.Solved++
	} else {
		s.Streak = 0
	}
	return s
}
