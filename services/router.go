package services

import (
	"encoding/json"
	"log"

	"voicechat-backend/models"
)

// Router dispatches inbound envelopes to the owning service and drives the
// connect/disconnect lifecycle. A malformed envelope is logged and skipped;
// nothing here ever terminates a connection.
type Router struct {
	presence *PresenceService
	chat     *ChatService
	calls    *CallService
	groups   *GroupCallService
}

func NewRouter(presence *PresenceService, chat *ChatService, calls *CallService, groups *GroupCallService) *Router {
	return &Router{presence: presence, chat: chat, calls: calls, groups: groups}
}

// Connected announces the server-assigned user id as the very first
// envelope. A username carried by a session token registers immediately, as
// if set_username had been received.
func (r *Router) Connected(connID, userID, presetUsername string) {
	r.presence.hub.SendToConn(connID, models.NewConnected(userID))
	if presetUsername != "" {
		r.presence.Register(connID, userID, presetUsername)
	}
}

func (r *Router) Dispatch(connID, userID string, raw []byte) {
	var in models.Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		log.Printf("Malformed envelope on conn %s: %v", connID, err)
		return
	}

	switch in.Type {
	case models.TypeSetUsername:
		if in.Username == "" {
			log.Printf("set_username without username on conn %s", connID)
			return
		}
		r.presence.Register(connID, userID, in.Username)
	case models.TypeGetUsers:
		r.presence.SendUserList(connID)
	case models.TypeStartPrivateChat:
		r.chat.StartPrivateChat(connID, in.TargetUserID)
	case models.TypePrivateMessage:
		r.chat.SendPrivateMessage(connID, in.RoomID, in.Text)
	case models.TypeGetPrivateHistory:
		r.chat.SendPrivateHistory(connID, in.RoomID)
	case models.TypeGeneralMessage:
		r.chat.SendGeneralMessage(connID, in.Text)
	case models.TypeCallOffer:
		r.calls.Offer(connID, userID, in)
	case models.TypeCallAnswer:
		r.calls.Answer(userID, in)
	case models.TypeICECandidate:
		r.calls.Candidate(in)
	case models.TypeEndCall:
		r.calls.End(in)
	case models.TypeRejectCall:
		r.calls.Reject(in)
	case models.TypeGroupCallStart:
		r.groups.Start(connID, userID, in.CallID)
	case models.TypeGroupCallJoin:
		r.groups.Join(connID, userID, in.CallID)
	case models.TypeGroupCallLeave:
		r.groups.Leave(userID, in.CallID)
	case models.TypeGroupCallSignal:
		r.groups.Signal(userID, in.CallID, in.Signal)
	case models.TypeGroupCallEnd:
		r.groups.End(userID, in.CallID)
	default:
		log.Printf("Unknown envelope type %q on conn %s", in.Type, connID)
	}
}

// Disconnect unwinds a closed connection: presence first, then every call
// and group call the user belonged to, then the registry record itself.
func (r *Router) Disconnect(connID, userID string) {
	user, known := r.presence.MarkOffline(connID)
	r.calls.EndAllFor(userID)
	username := "Unknown"
	if known {
		username = user.Username
	}
	r.groups.LeaveAll(userID, username)
	r.presence.Release(connID)
}
