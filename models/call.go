package models

type CallStatus string

const (
	CallCalling  CallStatus = "calling"
	CallRinging  CallStatus = "ringing"
	CallInCall   CallStatus = "in_call"
	CallEnded    CallStatus = "ended"
	CallRejected CallStatus = "rejected"
)

// CallSession is the ephemeral signaling context for a 1:1 call. The server
// only does routing plus minimal bookkeeping so that a disconnect can notify
// the remaining party; callId matching is performed by the participants.
type CallSession struct {
	CallID   string
	CallerID string
	CalleeID string
	Status   CallStatus
}

func (s *CallSession) HasParty(userID string) bool {
	return s.CallerID == userID || s.CalleeID == userID
}

func (s *CallSession) OtherParty(userID string) string {
	switch userID {
	case s.CallerID:
		return s.CalleeID
	case s.CalleeID:
		return s.CallerID
	}
	return ""
}

// GroupCall tracks a dynamic participant roster with a single creator.
// Membership is a set; the call is deleted when the roster empties or the
// creator explicitly ends it.
type GroupCall struct {
	CallID       string
	CreatorID    string
	CreatorName  string
	Participants map[string]struct{}
}

func (g *GroupCall) HasParticipant(userID string) bool {
	_, ok := g.Participants[userID]
	return ok
}

// ParticipantIDs returns the roster as a slice snapshot.
func (g *GroupCall) ParticipantIDs() []string {
	ids := make([]string, 0, len(g.Participants))
	for id := range g.Participants {
		ids = append(ids, id)
	}
	return ids
}
