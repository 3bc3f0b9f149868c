package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"voicechat-backend/config"
	"voicechat-backend/models"
	"voicechat-backend/repository"
)

// ChatService routes private and general chat messages. Membership
// violations and unknown rooms are silent no-ops so that room existence is
// never leaked to non-members.
type ChatService struct {
	users  repository.UserRepository
	rooms  repository.RoomRepository
	hub    Pusher
	config *config.Config
}

func NewChatService(ur repository.UserRepository, rr repository.RoomRepository, hub Pusher, cfg *config.Config) *ChatService {
	return &ChatService{users: ur, rooms: rr, hub: hub, config: cfg}
}

// StartPrivateChat creates (or reuses) the room between the requester and
// the target and notifies both sides, each seeing the other party.
func (s *ChatService) StartPrivateChat(connID, targetUserID string) {
	initiator, err := s.users.FindByConn(connID)
	if err != nil {
		return
	}
	targetConnID, target, err := s.users.FindByUserID(targetUserID)
	if err != nil {
		s.hub.SendToConn(connID, models.NewError("User is offline"))
		return
	}

	room := s.rooms.GetOrCreate(initiator.ID, targetUserID)
	s.hub.SendToConn(connID, models.NewPrivateRoomCreated(room.ID, target.Username, target.ID))
	s.hub.SendToConn(targetConnID, models.NewPrivateRoomCreated(room.ID, initiator.Username, initiator.ID))
}

// SendPrivateMessage appends to the room history and delivers to both
// participants. An offline peer is simply skipped; the message stays in
// history for a later fetch.
func (s *ChatService) SendPrivateMessage(connID, roomID, text string) {
	sender, err := s.users.FindByConn(connID)
	if err != nil {
		return
	}
	if !s.validText(sender.Username, text) {
		return
	}
	room, err := s.rooms.Find(roomID)
	if err != nil || !room.HasParticipant(sender.ID) {
		return
	}

	msg := models.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   sender.ID,
		SenderName: sender.Username,
		Text:       text,
		Time:       time.Now(),
		RoomID:     roomID,
	}
	if err := s.rooms.AppendPrivate(roomID, msg); err != nil {
		return
	}

	s.hub.SendToConn(connID, models.NewPrivateMessage(msg))
	receiverID := room.OtherParticipant(sender.ID)
	if receiverConnID, _, err := s.users.FindByUserID(receiverID); err == nil {
		s.hub.SendToConn(receiverConnID, models.NewPrivateMessage(msg))
	}
}

// SendPrivateHistory replays the newest bounded slice of the room history to
// the requester, participants only.
func (s *ChatService) SendPrivateHistory(connID, roomID string) {
	user, err := s.users.FindByConn(connID)
	if err != nil {
		return
	}
	room, err := s.rooms.Find(roomID)
	if err != nil || !room.HasParticipant(user.ID) {
		return
	}
	history, err := s.rooms.PrivateHistory(roomID, s.config.PrivateHistoryLimit)
	if err != nil {
		return
	}
	s.hub.SendToConn(connID, models.NewPrivateHistory(roomID, history))
}

// SendGeneralMessage appends to the general log and delivers to every open
// connection, including the sender.
func (s *ChatService) SendGeneralMessage(connID, text string) {
	sender, err := s.users.FindByConn(connID)
	if err != nil {
		return
	}
	if !s.validText(sender.Username, text) {
		return
	}

	msg := models.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   sender.ID,
		SenderName: sender.Username,
		Text:       text,
		Time:       time.Now(),
	}
	s.rooms.AppendGeneral(msg)
	s.hub.Broadcast(models.NewGeneralMessage(msg))
}

func (s *ChatService) validText(username, text string) bool {
	if text == "" {
		return false
	}
	if len(text) > s.config.MaxMessageLength {
		log.Printf("Dropping over-long message from %s (%d bytes)", username, len(text))
		return false
	}
	return true
}
