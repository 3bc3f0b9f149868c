package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"voicechat-backend/services"
)

// Hub owns the live connections, keyed by an opaque connection id issued at
// upgrade time. Services address connections only through that id.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS: allow all for demo
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request, issues fresh connection and user ids, and
// announces the user id before any inbound envelope is read. A valid session
// token on the query string pre-registers its username.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, router *services.Router, sessions *services.SessionService) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		connID: uuid.NewString(),
		userID: uuid.NewString(),
		router: router,
	}
	h.add(client)

	presetUsername := ""
	if token := r.URL.Query().Get("token"); token != "" && sessions != nil {
		if username, err := sessions.ParseToken(token); err == nil {
			presetUsername = username
		} else {
			log.Printf("Ignoring invalid session token on conn %s", client.connID)
		}
	}
	// Queue the connected announcement before the pumps start so it is the
	// first envelope on the wire.
	router.Connected(client.connID, client.userID, presetUsername)

	go client.writePump()
	go client.readPump()
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.connID] = client
	log.Printf("Connection %s opened. Total connections: %d", client.connID, len(h.clients))
}

func (h *Hub) remove(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	close(client.send)
	log.Printf("Connection %s closed. Total connections: %d", connID, len(h.clients))
}

// SendToConn marshals v and queues it on the connection's send channel.
// The send is non-blocking: a missing connection or a full buffer means the
// delivery is skipped, never waited on.
func (h *Hub) SendToConn(connID string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal outbound envelope: %v", err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.clients[connID]
	if !ok {
		return false
	}
	select {
	case client.send <- data:
		return true
	default:
		return false
	}
}

// Broadcast delivers v to every currently open connection.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal broadcast envelope: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.send <- data:
		default:
		}
	}
}

// ConnectionCount reports the number of open connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var _ services.Pusher = (*Hub)(nil)
