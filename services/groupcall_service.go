package services

import (
	"log"

	"github.com/google/uuid"

	"voicechat-backend/models"
	"voicechat-backend/repository"
)

// GroupCallService manages group-call rosters and fans opaque signaling out
// to the membership (mesh model: each pair negotiates independently, the
// server does no peer-connection bookkeeping).
type GroupCallService struct {
	users  repository.UserRepository
	groups repository.GroupCallRepository
	hub    Pusher
}

func NewGroupCallService(ur repository.UserRepository, gr repository.GroupCallRepository, hub Pusher) *GroupCallService {
	return &GroupCallService{users: ur, groups: gr, hub: hub}
}

// Start registers a group call with the creator as sole participant and
// announces it to every connection.
func (s *GroupCallService) Start(connID, creatorID, callID string) {
	if callID == "" {
		callID = "group_" + uuid.NewString()
	}
	creatorName := "Unknown"
	if u, err := s.users.FindByConn(connID); err == nil {
		creatorName = u.Username
	}
	s.groups.Create(callID, creatorID, creatorName)
	s.hub.Broadcast(models.NewGroupCallStarted(callID, creatorName, creatorID))
	log.Printf("Group call %s started by %s", callID, creatorID)
}

// Join adds the user to the roster (idempotent), replies with the current
// participant snapshot, and notifies the existing members. Unknown calls are
// a silent no-op.
func (s *GroupCallService) Join(connID, userID, callID string) {
	participants, ok := s.groups.Join(callID, userID)
	if !ok {
		return
	}

	names := make([]string, 0, len(participants))
	for _, pid := range participants {
		names = append(names, s.usernameOf(pid))
	}
	s.hub.SendToConn(connID, models.NewGroupCallParticipants(callID, names))

	joined := models.NewGroupCallUserJoined(callID, userID, s.usernameOf(userID))
	for _, pid := range participants {
		if pid == userID {
			continue
		}
		s.sendToUser(pid, joined)
	}
}

// Leave removes the user; the emptied roster deletes the call, otherwise the
// remaining members are notified.
func (s *GroupCallService) Leave(userID, callID string) {
	remaining, removed := s.groups.Leave(callID, userID)
	if !removed {
		return
	}
	left := models.NewGroupCallUserLeft(callID, userID, s.usernameOf(userID))
	for _, pid := range remaining {
		s.sendToUser(pid, left)
	}
}

// Signal fans the opaque payload out to every other current participant.
// Non-participants are silently ignored.
func (s *GroupCallService) Signal(userID, callID string, signal []byte) {
	others, ok := s.groups.OtherParticipants(callID, userID)
	if !ok {
		return
	}
	event := models.NewGroupCallSignal(callID, userID, signal)
	for _, pid := range others {
		s.sendToUser(pid, event)
	}
}

// End tears the call down, creator only.
func (s *GroupCallService) End(userID, callID string) {
	participants, ok := s.groups.End(callID, userID)
	if !ok {
		return
	}
	ended := models.NewGroupCallEnded(callID, s.usernameOf(userID))
	for _, pid := range participants {
		s.sendToUser(pid, ended)
	}
	log.Printf("Group call %s ended by %s", callID, userID)
}

// LeaveAll removes the user from every group call they belong to, emitting
// the usual leave notices. Used on disconnect; the username is passed in
// because the registry record may already be offline.
func (s *GroupCallService) LeaveAll(userID, username string) {
	for _, callID := range s.groups.CallsWithUser(userID) {
		remaining, removed := s.groups.Leave(callID, userID)
		if !removed {
			continue
		}
		left := models.NewGroupCallUserLeft(callID, userID, username)
		for _, pid := range remaining {
			s.sendToUser(pid, left)
		}
	}
}

func (s *GroupCallService) sendToUser(userID string, v any) {
	if connID, _, err := s.users.FindByUserID(userID); err == nil {
		s.hub.SendToConn(connID, v)
	}
}

func (s *GroupCallService) usernameOf(userID string) string {
	if _, u, err := s.users.FindByUserID(userID); err == nil {
		return u.Username
	}
	return "Unknown"
}
