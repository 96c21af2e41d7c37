package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/monster-math/backend/internal/models"
)

// Generator produces arithmetic puzzles with a guaranteed non-negative
// integer answer and results bounded at 20.
type Generator struct {
	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSeed returns a deterministic generator for tests.
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a new puzzle. Operator is uniform over {+, -}.
//
// Addition picks the target in [6,20] and the shown operand in
// [1,target-1], so the hidden addend is always >= 1. Subtraction picks
// the minuend in [6,20] and the hidden subtrahend in [0,operand-1], so
// the shown result is always >= 1. The asymmetry keeps every puzzle
// solvable with a non-negative unknown while capping results at 20.
func (g *Generator) Generate() models.Puzzle {
	g.mu.Lock()
	defer g.mu.Unlock()

	var p models.Puzzle
	if g.rng.Intn(2) == 0 {
		p.Operator = models.OperatorAdd
		p.Target = g.rng.Intn(15) + 6          // [6, 20]
		p.Operand = g.rng.Intn(p.Target-1) + 1 // [1, target-1]
		p.Answer = p.Target - p.Operand
	} else {
		p.Operator = models.OperatorSubtract
		p.Operand = g.rng.Intn(15) + 6   // [6, 20]
		p.Answer = g.rng.Intn(p.Operand) // [0, operand-1]
		p.Target = p.Operand - p.Answer
	}

	p.DisplayText = fmt.Sprintf("%d %s ? = %d", p.Operand, p.Operator, p.Target)
	return p
}

// Evaluate reports whether the submitted value solves the puzzle. The
// input is parsed as an integer; anything that doesn't parse never
// matches.
func Evaluate(p models.Puzzle, submitted string) bool {
	v, err := strconv.Atoi(strings.TrimSpace(submitted))
	if err != nil {
		return false
	}
	return v == p.Answer
}

// AnswerFor recomputes the hidden value of an equation a client sends
// back. Unknown operators and equations whose unknown would be negative
// are rejected; well-formed puzzles from Generate never hit either case.
func AnswerFor(op models.Operator, operand, target int) (int, error) {
	var answer int
	switch op {
	case models.OperatorAdd:
		answer = target - operand
	case models.OperatorSubtract:
		answer = operand - target
	default:
		return 0, errors.New("operator must be + or -")
	}
	if answer < 0 {
		return 0, errors.New("equation has no non-negative answer")
	}
	return answer, nil
}
