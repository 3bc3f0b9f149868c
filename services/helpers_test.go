package services

import (
	"encoding/json"
	"sync"
	"testing"

	"voicechat-backend/config"
	"voicechat-backend/repository"
)

// fakePusher records outbound envelopes instead of writing to sockets.
type fakePusher struct {
	mu         sync.Mutex
	sent       map[string][]any
	broadcasts []any
}

func newFakePusher() *fakePusher {
	return &fakePusher{sent: make(map[string][]any)}
}

func (f *fakePusher) SendToConn(connID string, v any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[connID] = append(f.sent[connID], v)
	return true
}

func (f *fakePusher) Broadcast(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, v)
}

func (f *fakePusher) sentTo(connID string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]any, len(f.sent[connID]))
	copy(out, f.sent[connID])
	return out
}

func (f *fakePusher) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = make(map[string][]any)
	f.broadcasts = nil
}

// countTo counts envelopes of the given type delivered to connID.
func (f *fakePusher) countTo(connID, envType string) int {
	n := 0
	for _, v := range f.sentTo(connID) {
		if typeOf(v) == envType {
			n++
		}
	}
	return n
}

func typeOf(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	var probe struct {
		Type string `json:"type"`
	}
	json.Unmarshal(b, &probe)
	return probe.Type
}

type testEnv struct {
	users    *repository.InMemoryUserRepo
	rooms    *repository.InMemoryRoomRepo
	calls    *repository.InMemoryCallRepo
	groups   *repository.InMemoryGroupCallRepo
	hub      *fakePusher
	presence *PresenceService
	chat     *ChatService
	call     *CallService
	group    *GroupCallService
	router   *Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		MaxMessageLength:    1000,
		GeneralHistoryLimit: 50,
		PrivateHistoryLimit: 100,
		HistoryRetention:    500,
	}
	env := &testEnv{
		users:  repository.NewInMemoryUserRepo(),
		rooms:  repository.NewInMemoryRoomRepo(cfg.HistoryRetention),
		calls:  repository.NewInMemoryCallRepo(),
		groups: repository.NewInMemoryGroupCallRepo(),
		hub:    newFakePusher(),
	}
	env.presence = NewPresenceService(env.users, env.rooms, env.hub, cfg)
	env.chat = NewChatService(env.users, env.rooms, env.hub, cfg)
	env.call = NewCallService(env.users, env.calls, env.hub)
	env.group = NewGroupCallService(env.users, env.groups, env.hub)
	env.router = NewRouter(env.presence, env.chat, env.call, env.group)
	return env
}

// register puts a user in the registry without emitting presence envelopes.
func (e *testEnv) register(connID, userID, username string) {
	e.users.Register(connID, userID, username)
}
