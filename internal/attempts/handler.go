package attempts

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/monster-math/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// RegisterRoutes registers the attempt and stats endpoints on the
// protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/attempts", h.SaveAttempt).Methods("POST")
	protected.HandleFunc("/stats", h.GetStats).Methods("GET")
}

func (h *Handler) SaveAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SaveAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Question == nil || *req.Question == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question is required"})
		return
	}
	if req.TimeTakenSeconds == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "time_taken_seconds is required"})
		return
	}
	if *req.TimeTakenSeconds < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "time_taken_seconds must be non-negative"})
		return
	}
	if req.SolvedCorrectly == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "solved_correctly is required"})
		return
	}

	if _, err := h.service.RecordAttempt(userID, req); err != nil {
		log.Printf("[handler] SaveAttempt error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save attempt"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	gameType := queryStringDefault(r, "game_type", models.GameTypeAll)

	resp, err := h.service.GetStats(userID, gameType)
	if err != nil {
		log.Printf("[handler] GetStats error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get stats"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Helpers ──────────────────────────────────────────────

func queryStringDefault(r *http.Request, key, defaultVal string) string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
