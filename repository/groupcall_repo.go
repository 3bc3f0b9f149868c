package repository

import (
	"sync"

	"voicechat-backend/models"
)

// GroupCallRepository tracks group-call rosters. Mutating methods return the
// snapshots the caller needs for notifications, taken under the same lock as
// the mutation so membership and fan-out never disagree.
type GroupCallRepository interface {
	Create(callID, creatorID, creatorName string) *models.GroupCall
	Join(callID, userID string) (participants []string, ok bool)
	Leave(callID, userID string) (remaining []string, removed bool)
	OtherParticipants(callID, userID string) ([]string, bool)
	End(callID, requesterID string) (participants []string, ok bool)
	CallsWithUser(userID string) []string
}

type InMemoryGroupCallRepo struct {
	mu    sync.RWMutex
	calls map[string]*models.GroupCall
}

func NewInMemoryGroupCallRepo() *InMemoryGroupCallRepo {
	return &InMemoryGroupCallRepo{calls: make(map[string]*models.GroupCall)}
}

func (r *InMemoryGroupCallRepo) Create(callID, creatorID, creatorName string) *models.GroupCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := &models.GroupCall{
		CallID:       callID,
		CreatorID:    creatorID,
		CreatorName:  creatorName,
		Participants: map[string]struct{}{creatorID: {}},
	}
	r.calls[callID] = call
	return call
}

// Join adds userID to the roster (idempotent, set semantics) and returns the
// full roster snapshot including the joiner.
func (r *InMemoryGroupCallRepo) Join(callID, userID string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[callID]
	if !ok {
		return nil, false
	}
	call.Participants[userID] = struct{}{}
	return call.ParticipantIDs(), true
}

// Leave removes userID; an emptied roster deletes the call. removed reports
// whether the user was actually a participant.
func (r *InMemoryGroupCallRepo) Leave(callID, userID string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[callID]
	if !ok {
		return nil, false
	}
	if _, member := call.Participants[userID]; !member {
		return nil, false
	}
	delete(call.Participants, userID)
	if len(call.Participants) == 0 {
		delete(r.calls, callID)
		return nil, true
	}
	return call.ParticipantIDs(), true
}

// OtherParticipants returns everyone except userID, but only if userID is a
// current participant.
func (r *InMemoryGroupCallRepo) OtherParticipants(callID, userID string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	call, ok := r.calls[callID]
	if !ok || !call.HasParticipant(userID) {
		return nil, false
	}
	others := make([]string, 0, len(call.Participants)-1)
	for id := range call.Participants {
		if id != userID {
			others = append(others, id)
		}
	}
	return others, true
}

// End deletes the call if requesterID is the creator and returns the final
// roster for the ended notice. Non-creator requests are ignored.
func (r *InMemoryGroupCallRepo) End(callID, requesterID string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[callID]
	if !ok || call.CreatorID != requesterID {
		return nil, false
	}
	participants := call.ParticipantIDs()
	delete(r.calls, callID)
	return participants, true
}

// CallsWithUser lists every callId the user currently belongs to, for the
// disconnect unwind.
func (r *InMemoryGroupCallRepo) CallsWithUser(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, call := range r.calls {
		if call.HasParticipant(userID) {
			ids = append(ids, id)
		}
	}
	return ids
}
