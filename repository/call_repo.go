package repository

import (
	"sync"

	"voicechat-backend/models"
)

// CallRepository keeps the minimal per-call bookkeeping the relay needs: who
// is on either end of a callId, so a disconnect can notify the remaining
// party. Signaling itself never depends on a session existing.
type CallRepository interface {
	Save(session models.CallSession)
	Find(callID string) (models.CallSession, error)
	SetStatus(callID string, status models.CallStatus)
	Delete(callID string)
	FindByParty(userID string) []models.CallSession
}

type InMemoryCallRepo struct {
	mu       sync.RWMutex
	sessions map[string]*models.CallSession
}

func NewInMemoryCallRepo() *InMemoryCallRepo {
	return &InMemoryCallRepo{sessions: make(map[string]*models.CallSession)}
}

// Save overwrites any previous session with the same callId. A reused callId
// across overlapping calls is last-writer-wins.
func (r *InMemoryCallRepo) Save(session models.CallSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.CallID] = &session
}

func (r *InMemoryCallRepo) Find(callID string) (models.CallSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[callID]
	if !ok {
		return models.CallSession{}, ErrNotFound
	}
	return *s, nil
}

// SetStatus is a no-op for unknown callIds.
func (r *InMemoryCallRepo) SetStatus(callID string, status models.CallStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[callID]; ok {
		s.Status = status
	}
}

func (r *InMemoryCallRepo) Delete(callID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, callID)
}

func (r *InMemoryCallRepo) FindByParty(userID string) []models.CallSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.CallSession
	for _, s := range r.sessions {
		if s.HasParty(userID) {
			out = append(out, *s)
		}
	}
	return out
}
