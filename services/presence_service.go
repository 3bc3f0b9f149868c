package services

import (
	"voicechat-backend/config"
	"voicechat-backend/models"
	"voicechat-backend/repository"
)

// Pusher is the outbound side of the hub. Sends are check-and-skip: a
// connection that is not open is silently skipped, never waited on.
type Pusher interface {
	SendToConn(connID string, v any) bool
	Broadcast(v any)
}

// PresenceService owns registration and the online-user list. Every change
// pushes the full list to all connections; there is no diff protocol.
type PresenceService struct {
	users  repository.UserRepository
	rooms  repository.RoomRepository
	hub    Pusher
	config *config.Config
}

func NewPresenceService(ur repository.UserRepository, rr repository.RoomRepository, hub Pusher, cfg *config.Config) *PresenceService {
	return &PresenceService{users: ur, rooms: rr, hub: hub, config: cfg}
}

// Register attaches a username to the connection, replays the recent general
// history to it, and rebroadcasts the user list.
func (s *PresenceService) Register(connID, userID, username string) {
	s.users.Register(connID, userID, username)
	history := s.rooms.GeneralHistory(s.config.GeneralHistoryLimit)
	s.hub.SendToConn(connID, models.NewGeneralHistory(history))
	s.BroadcastUserList()
}

func (s *PresenceService) SendUserList(connID string) {
	s.hub.SendToConn(connID, models.NewUserList(s.users.ListOnline()))
}

func (s *PresenceService) BroadcastUserList() {
	s.hub.Broadcast(models.NewUserList(s.users.ListOnline()))
}

// MarkOffline flips the user's online flag and rebroadcasts presence. The
// record itself is dropped later, once the connection handle is released.
func (s *PresenceService) MarkOffline(connID string) (models.User, bool) {
	user, err := s.users.MarkOffline(connID)
	if err != nil {
		return models.User{}, false
	}
	s.BroadcastUserList()
	return user, true
}

// Release drops the registry record once the connection handle is gone.
func (s *PresenceService) Release(connID string) {
	s.users.Remove(connID)
}
