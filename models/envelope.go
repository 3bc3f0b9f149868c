package models

import "encoding/json"

// Inbound envelope kinds (client -> server).
const (
	TypeSetUsername       = "set_username"
	TypeGetUsers          = "get_users"
	TypeStartPrivateChat  = "start_private_chat"
	TypePrivateMessage    = "private_message"
	TypeGetPrivateHistory = "get_private_history"
	TypeGeneralMessage    = "general_message"
	TypeCallOffer         = "call_offer"
	TypeCallAnswer        = "call_answer"
	TypeICECandidate      = "ice_candidate"
	TypeEndCall           = "end_call"
	TypeRejectCall        = "reject_call"
	TypeGroupCallStart    = "group_call_start"
	TypeGroupCallJoin     = "group_call_join"
	TypeGroupCallLeave    = "group_call_leave"
	TypeGroupCallSignal   = "group_call_signal"
	TypeGroupCallEnd      = "group_call_end"
)

// Inbound is the single flat envelope every client message decodes into.
// Fields are populated per Type; signaling payloads stay opaque raw JSON.
type Inbound struct {
	Type         string          `json:"type"`
	Username     string          `json:"username,omitempty"`
	TargetUserID string          `json:"targetUserId,omitempty"`
	RoomID       string          `json:"roomId,omitempty"`
	Text         string          `json:"text,omitempty"`
	CallID       string          `json:"callId,omitempty"`
	CallerID     string          `json:"callerId,omitempty"`
	Offer        json.RawMessage `json:"offer,omitempty"`
	Answer       json.RawMessage `json:"answer,omitempty"`
	Candidate    json.RawMessage `json:"candidate,omitempty"`
	Signal       json.RawMessage `json:"signal,omitempty"`
}

// Outbound envelopes (server -> client). Each carries its own type tag so a
// marshaled value is a complete wire message.

type Connected struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

func NewConnected(userID string) Connected {
	return Connected{Type: "connected", UserID: userID}
}

type UserList struct {
	Type  string `json:"type"`
	Users []User `json:"users"`
}

func NewUserList(users []User) UserList {
	return UserList{Type: "user_list", Users: users}
}

type GeneralHistory struct {
	Type     string        `json:"type"`
	Messages []ChatMessage `json:"messages"`
}

func NewGeneralHistory(messages []ChatMessage) GeneralHistory {
	return GeneralHistory{Type: "general_history", Messages: messages}
}

type MessageEvent struct {
	Type string      `json:"type"`
	Data ChatMessage `json:"data"`
}

func NewGeneralMessage(msg ChatMessage) MessageEvent {
	return MessageEvent{Type: "general_message", Data: msg}
}

func NewPrivateMessage(msg ChatMessage) MessageEvent {
	return MessageEvent{Type: "private_message", Data: msg}
}

type PrivateRoomCreated struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId"`
	Partner   string `json:"partner"`
	PartnerID string `json:"partnerId"`
}

func NewPrivateRoomCreated(roomID, partner, partnerID string) PrivateRoomCreated {
	return PrivateRoomCreated{Type: "private_room_created", RoomID: roomID, Partner: partner, PartnerID: partnerID}
}

type PrivateHistory struct {
	Type     string        `json:"type"`
	RoomID   string        `json:"roomId"`
	Messages []ChatMessage `json:"messages"`
}

func NewPrivateHistory(roomID string, messages []ChatMessage) PrivateHistory {
	return PrivateHistory{Type: "private_history", RoomID: roomID, Messages: messages}
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorEvent {
	return ErrorEvent{Type: "error", Message: message}
}

func NewCallError(message string) ErrorEvent {
	return ErrorEvent{Type: "call_error", Message: message}
}

type CallOfferEvent struct {
	Type       string          `json:"type"`
	Offer      json.RawMessage `json:"offer"`
	CallerID   string          `json:"callerId"`
	CallerName string          `json:"callerName"`
	CallID     string          `json:"callId"`
}

func NewCallOffer(offer json.RawMessage, callerID, callerName, callID string) CallOfferEvent {
	return CallOfferEvent{Type: "call_offer", Offer: offer, CallerID: callerID, CallerName: callerName, CallID: callID}
}

type CallAnswerEvent struct {
	Type   string          `json:"type"`
	Answer json.RawMessage `json:"answer"`
	CallID string          `json:"callId"`
}

func NewCallAnswer(answer json.RawMessage, callID string) CallAnswerEvent {
	return CallAnswerEvent{Type: "call_answer", Answer: answer, CallID: callID}
}

type ICECandidateEvent struct {
	Type      string          `json:"type"`
	Candidate json.RawMessage `json:"candidate"`
	CallID    string          `json:"callId"`
}

func NewICECandidate(candidate json.RawMessage, callID string) ICECandidateEvent {
	return ICECandidateEvent{Type: "ice_candidate", Candidate: candidate, CallID: callID}
}

type CallStateEvent struct {
	Type   string `json:"type"`
	CallID string `json:"callId"`
}

func NewCallEnded(callID string) CallStateEvent {
	return CallStateEvent{Type: "call_ended", CallID: callID}
}

func NewCallRejected(callID string) CallStateEvent {
	return CallStateEvent{Type: "call_rejected", CallID: callID}
}

type GroupCallStarted struct {
	Type        string `json:"type"`
	CallID      string `json:"callId"`
	CreatorName string `json:"creatorName"`
	CreatorID   string `json:"creatorId"`
}

func NewGroupCallStarted(callID, creatorName, creatorID string) GroupCallStarted {
	return GroupCallStarted{Type: "group_call_started", CallID: callID, CreatorName: creatorName, CreatorID: creatorID}
}

type GroupCallParticipants struct {
	Type         string   `json:"type"`
	CallID       string   `json:"callId"`
	Participants []string `json:"participants"`
}

func NewGroupCallParticipants(callID string, participants []string) GroupCallParticipants {
	return GroupCallParticipants{Type: "group_call_participants", CallID: callID, Participants: participants}
}

type GroupCallMemberEvent struct {
	Type     string `json:"type"`
	CallID   string `json:"callId"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func NewGroupCallUserJoined(callID, userID, username string) GroupCallMemberEvent {
	return GroupCallMemberEvent{Type: "group_call_user_joined", CallID: callID, UserID: userID, Username: username}
}

func NewGroupCallUserLeft(callID, userID, username string) GroupCallMemberEvent {
	return GroupCallMemberEvent{Type: "group_call_user_left", CallID: callID, UserID: userID, Username: username}
}

type GroupCallSignalEvent struct {
	Type     string          `json:"type"`
	CallID   string          `json:"callId"`
	SenderID string          `json:"senderId"`
	Signal   json.RawMessage `json:"signal"`
}

func NewGroupCallSignal(callID, senderID string, signal json.RawMessage) GroupCallSignalEvent {
	return GroupCallSignalEvent{Type: "group_call_signal", CallID: callID, SenderID: senderID, Signal: signal}
}

type GroupCallEnded struct {
	Type    string `json:"type"`
	CallID  string `json:"callId"`
	EndedBy string `json:"endedBy"`
}

func NewGroupCallEnded(callID, endedBy string) GroupCallEnded {
	return GroupCallEnded{Type: "group_call_ended", CallID: callID, EndedBy: endedBy}
}
