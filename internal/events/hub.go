package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

type subscriber struct {
	conn   *websocket.Conn
	viewer domain.RequestContext
	send   chan []byte
	once   sync.Once
}

// wants applies the trip visibility rule. Events without a trip payload
// (deletions) only reach managers.
func (s *subscriber) wants(ev TripEvent) bool {
	if s.viewer.Role.IsManager() {
		return true
	}
	return ev.Trip != nil && ev.Trip.VisibleTo(s.viewer)
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// Hub fans trip events out to WebSocket subscribers. Each subscriber only
// receives events for trips its viewer may read. A subscriber whose buffer
// is full is disconnected instead of stalling the publisher.
type Hub struct {
	mu       sync.RWMutex
	subs     map[*subscriber]struct{}
	upgrader websocket.Upgrader
	closed   bool
}

// NewHub builds a hub. checkOrigin may be nil to accept any origin.
func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		subs: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *Hub) Publish(ev TripEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		utils.LogError(ev.RequestID, "events", "marshal", err)
		return
	}

	var slow []*subscriber
	h.mu.RLock()
	for s := range h.subs {
		if !s.wants(ev) {
			continue
		}
		select {
		case s.send <- msg:
		default:
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range slow {
		utils.LogEvent(ev.RequestID, "events", "drop_subscriber", "send buffer full")
		h.remove(s)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// ServeWS upgrades the request and streams the events viewer may see until
// the peer leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, viewer domain.RequestContext) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.LogError("", "events", "upgrade", err)
		return
	}
	s := &subscriber{conn: conn, viewer: viewer, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	go h.writePump(s)
	h.readPump(s)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := make([]*subscriber, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()

	for _, s := range subs {
		s.close()
	}
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	_, ok := h.subs[s]
	delete(h.subs, s)
	h.mu.Unlock()
	if ok {
		s.close()
	}
}

// readPump only services control frames; clients do not send commands.
func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.remove(s)
		_ = s.conn.Close()
	}()
	s.conn.SetReadLimit(512)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.LogError("", "events", "read", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
