package models

import (
	"sort"
	"strings"
	"time"
)

type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"text"`
	Time       time.Time `json:"time"`
	// RoomID is empty for general-chat messages.
	RoomID string `json:"roomId,omitempty"`
}

// Room holds the message history between exactly two users. Rooms live for
// the lifetime of the process and are never deleted.
type Room struct {
	ID           string
	Participants [2]string
	Messages     []ChatMessage
}

func (r *Room) HasParticipant(userID string) bool {
	return r.Participants[0] == userID || r.Participants[1] == userID
}

// OtherParticipant returns the participant that is not userID, or "" if
// userID is not a member.
func (r *Room) OtherParticipant(userID string) string {
	switch userID {
	case r.Participants[0]:
		return r.Participants[1]
	case r.Participants[1]:
		return r.Participants[0]
	}
	return ""
}

// RoomID derives the private-room id for a pair of users. The id is a pure
// function of the two ids, order-independent, so repeated requests between
// the same pair always land in the same room.
func RoomID(userID1, userID2 string) string {
	ids := []string{userID1, userID2}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}
