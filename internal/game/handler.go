package game

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/monster-math/backend/internal/models"
)

type Handler struct {
	gen *Generator
}

func NewHandler(gen *Generator) *Handler {
	return &Handler{gen: gen}
}

// RegisterRoutes registers the puzzle endpoints. They carry no user data,
// so they sit on the public subrouter.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/game/puzzle", h.NextPuzzle).Methods("GET")
	api.HandleFunc("/game/check", h.CheckAnswer).Methods("POST")
}

// NextPuzzle returns a freshly generated puzzle, answer included — the
// client holds the answer for the puzzle's lifetime, as it did when
// generation ran in the browser. The caller starts its own timer.
func (h *Handler) NextPuzzle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gen.Generate())
}

// CheckAnswer evaluates a submitted answer against the puzzle the client
// sends back, and folds the result into the caller-owned session state.
// On a miss the client keeps the same puzzle and restarts its timer; a
// new puzzle is only fetched after a correct answer.
func (h *Handler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.CheckAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Operand == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "operand is required"})
		return
	}
	if req.Target == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "target is required"})
		return
	}
	if len(req.Answer) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "answer is required"})
		return
	}

	answer, err := AnswerFor(req.Operator, *req.Operand, *req.Target)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	puzzle := models.Puzzle{
		Operator: req.Operator,
		Operand:  *req.Operand,
		Target:   *req.Target,
		Answer:   answer,
	}

	correct := Evaluate(puzzle, rawValue(req.Answer))

	session := models.GameSession{}
	if req.Session != nil {
		session = *req.Session
	}
	session = ApplyResult(session, correct)

	writeJSON(w, http.StatusOK, models.CheckAnswerResponse{
		Correct: correct,
		Session: session,
	})
}

// rawValue renders a raw JSON scalar as the text the evaluator parses.
// Numbers and strings both work; anything else ends up non-matching.
func rawValue(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	return strings.Trim(s, `"`)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
