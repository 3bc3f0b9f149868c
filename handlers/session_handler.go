package handlers

import (
	"encoding/json"
	"net/http"

	"voicechat-backend/services"
)

type SessionHandler struct {
	svc *services.SessionService
}

func NewSessionHandler(s *services.SessionService) *SessionHandler { return &SessionHandler{svc: s} }

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// Create issues a guest session token for a display name. No credentials:
// any name is accepted and duplicates are allowed.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, "Method not allowed", "Use POST method", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	token, err := h.svc.IssueToken(req.Username)
	if err != nil {
		respondWithError(w, "Session creation failed", err.Error(), http.StatusBadRequest)
		return
	}

	respondWithSuccess(w, map[string]interface{}{
		"token":    token,
		"username": req.Username,
	})
}

func respondWithError(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Message: message,
	})
}

func respondWithSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Data:    data,
	})
}
