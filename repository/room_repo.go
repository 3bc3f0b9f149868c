package repository

import (
	"sync"

	"voicechat-backend/models"
)

// RoomRepository stores private two-party rooms plus the general-chat log.
// Histories are append-only but retention-capped; reads return at most the
// requested number of newest entries in chronological order.
type RoomRepository interface {
	GetOrCreate(userID1, userID2 string) *models.Room
	Find(roomID string) (*models.Room, error)
	AppendPrivate(roomID string, msg models.ChatMessage) error
	PrivateHistory(roomID string, limit int) ([]models.ChatMessage, error)
	AppendGeneral(msg models.ChatMessage)
	GeneralHistory(limit int) []models.ChatMessage
}

type InMemoryRoomRepo struct {
	mu        sync.RWMutex
	rooms     map[string]*models.Room
	general   []models.ChatMessage
	retention int
}

func NewInMemoryRoomRepo(retention int) *InMemoryRoomRepo {
	if retention <= 0 {
		retention = 500
	}
	return &InMemoryRoomRepo{
		rooms:     make(map[string]*models.Room),
		retention: retention,
	}
}

// GetOrCreate is idempotent: the room id is derived from the pair, so
// repeated requests between the same two users reuse the same room.
func (r *InMemoryRoomRepo) GetOrCreate(userID1, userID2 string) *models.Room {
	roomID := models.RoomID(userID1, userID2)
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[roomID]; ok {
		return room
	}
	room := &models.Room{
		ID:           roomID,
		Participants: [2]string{userID1, userID2},
	}
	r.rooms[roomID] = room
	return room
}

func (r *InMemoryRoomRepo) Find(roomID string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	return room, nil
}

func (r *InMemoryRoomRepo) AppendPrivate(roomID string, msg models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	room.Messages = append(room.Messages, msg)
	room.Messages = capHistory(room.Messages, r.retention)
	return nil
}

func (r *InMemoryRoomRepo) PrivateHistory(roomID string, limit int) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	return tail(room.Messages, limit), nil
}

func (r *InMemoryRoomRepo) AppendGeneral(msg models.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.general = append(r.general, msg)
	r.general = capHistory(r.general, r.retention)
}

func (r *InMemoryRoomRepo) GeneralHistory(limit int) []models.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return tail(r.general, limit)
}

func capHistory(msgs []models.ChatMessage, retention int) []models.ChatMessage {
	if len(msgs) <= retention {
		return msgs
	}
	return msgs[len(msgs)-retention:]
}

// tail copies the newest limit entries, preserving order.
func tail(msgs []models.ChatMessage, limit int) []models.ChatMessage {
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}
