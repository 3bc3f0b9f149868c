package services

import (
	"log"

	"github.com/google/uuid"

	"voicechat-backend/models"
	"voicechat-backend/repository"
)

// CallService relays 1:1 call signaling. Forwarding never depends on a
// session existing; the session store only exists so a disconnect can notify
// the remaining party. Missing targets degrade to a one-sided error or a
// silent drop, never a connection fault.
type CallService struct {
	users repository.UserRepository
	calls repository.CallRepository
	hub   Pusher
}

func NewCallService(ur repository.UserRepository, cr repository.CallRepository, hub Pusher) *CallService {
	return &CallService{users: ur, calls: cr, hub: hub}
}

// Offer forwards a call offer to the callee. An offline callee yields a
// single call_error to the caller and no session.
func (s *CallService) Offer(connID, callerID string, in models.Inbound) {
	calleeConnID, _, err := s.users.FindByUserID(in.TargetUserID)
	if err != nil {
		s.hub.SendToConn(connID, models.NewCallError("User is offline"))
		return
	}

	callID := in.CallID
	if callID == "" {
		callID = uuid.NewString()
	}
	s.calls.Save(models.CallSession{
		CallID:   callID,
		CallerID: callerID,
		CalleeID: in.TargetUserID,
		Status:   models.CallRinging,
	})

	s.hub.SendToConn(calleeConnID, models.NewCallOffer(in.Offer, callerID, s.usernameOfConn(connID), callID))
	log.Printf("Relayed call offer %s from %s to %s", callID, callerID, in.TargetUserID)
}

// Answer forwards the answer back to the caller. The session moves to
// in_call only when the answer comes from its callee; an unknown callId or a
// stranger's answer still forwards, bookkeeping is best-effort.
func (s *CallService) Answer(userID string, in models.Inbound) {
	callerConnID, _, err := s.users.FindByUserID(in.CallerID)
	if err != nil {
		return
	}
	if session, err := s.calls.Find(in.CallID); err == nil && session.CalleeID == userID {
		s.calls.SetStatus(in.CallID, models.CallInCall)
	}
	s.hub.SendToConn(callerConnID, models.NewCallAnswer(in.Answer, in.CallID))
	log.Printf("Relayed call answer %s to %s", in.CallID, in.CallerID)
}

// Candidate is a pure forward with no state mutation.
func (s *CallService) Candidate(in models.Inbound) {
	targetConnID, _, err := s.users.FindByUserID(in.TargetUserID)
	if err != nil {
		return
	}
	s.hub.SendToConn(targetConnID, models.NewICECandidate(in.Candidate, in.CallID))
}

// End notifies the other party and discards the session. Ending a call the
// server has no record of is tolerated.
func (s *CallService) End(in models.Inbound) {
	s.calls.Delete(in.CallID)
	targetConnID, _, err := s.users.FindByUserID(in.TargetUserID)
	if err != nil {
		return
	}
	s.hub.SendToConn(targetConnID, models.NewCallEnded(in.CallID))
}

// Reject notifies the caller and discards the session.
func (s *CallService) Reject(in models.Inbound) {
	s.calls.Delete(in.CallID)
	callerConnID, _, err := s.users.FindByUserID(in.CallerID)
	if err != nil {
		return
	}
	s.hub.SendToConn(callerConnID, models.NewCallRejected(in.CallID))
}

// EndAllFor unwinds every 1:1 call the user participates in, sending exactly
// one call_ended per session to the remaining party. Used on disconnect.
func (s *CallService) EndAllFor(userID string) {
	for _, session := range s.calls.FindByParty(userID) {
		s.calls.Delete(session.CallID)
		partnerID := session.OtherParty(userID)
		if partnerConnID, _, err := s.users.FindByUserID(partnerID); err == nil {
			s.hub.SendToConn(partnerConnID, models.NewCallEnded(session.CallID))
		}
	}
}

func (s *CallService) usernameOfConn(connID string) string {
	if u, err := s.users.FindByConn(connID); err == nil {
		return u.Username
	}
	return "Unknown"
}
