package models

import "encoding/json"

type Operator string

const (
	OperatorAdd      Operator = "+"
	OperatorSubtract Operator = "-"
)

// Puzzle is one arithmetic question: a revealed operand, a revealed
// target, and one hidden answer. The answer is returned to the caller —
// the client holds it for the lifetime of the puzzle, the same trust
// model as client-side generation.
//
// Invariants: Answer >= 0; for "+" Operand+Answer == Target; for "-"
// Operand-Answer == Target.
type Puzzle struct {
	Operator    Operator `json:"operator"`
	Operand     int      `json:"operand"`
	Target      int      `json:"target"`
	Answer      int      `json:"answer"`
	DisplayText string   `json:"display_text"`
}

// CheckAnswerRequest carries the puzzle being answered, the submitted
// value, and the caller-owned session state. Answer is raw JSON so both
// number and string submissions are accepted; anything that isn't an
// integer simply never matches.
type CheckAnswerRequest struct {
	Operator Operator        `json:"operator"`
	Operand  *int            `json:"operand"`
	Target   *int            `json:"target"`
	Answer   json.RawMessage `json:"answer"`
	Session  *GameSession    `json:"session"`
}

// GameSession is the explicit per-session score state, owned by the
// caller and round-tripped through check-answer. Nothing server-side
// holds it.
type GameSession struct {
	Score  int `json:"score"`
	Streak int `json:"streak"`
	Solved int `json:"solved"`
}

type CheckAnswerResponse struct {
	Correct bool        `json:"correct"`
	Session GameSession `json:"session"`
}
