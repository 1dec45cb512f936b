package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Hub fans outbound events to every websocket session watching a match.
// Publish never blocks: a session that can't keep up drops events.
type Hub struct {
	logger zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]map[*session]struct{}
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger:   logger,
		sessions: make(map[string]map[*session]struct{}),
	}
}

func (h *Hub) Publish(matchId string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event.Type).Msg("failed to marshal event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.sessions[matchId] {
		select {
		case s.outbox <- data:
		default:
			// Slow consumer; the next full-state snapshot resyncs it.
		}
	}
}

func (h *Hub) add(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[s.matchId] == nil {
		h.sessions[s.matchId] = make(map[*session]struct{})
	}
	h.sessions[s.matchId][s] = struct{}{}
}

func (h *Hub) remove(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions[s.matchId], s)
	if len(h.sessions[s.matchId]) == 0 {
		delete(h.sessions, s.matchId)
	}
}

type session struct {
	conn     *websocket.Conn
	outbox   chan []byte
	matchId  string
	playerId string
}

func newSession(conn *websocket.Conn, matchId, playerId string) *session {
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(time.Minute))
		return nil
	})
	return &session{
		conn:     conn,
		outbox:   make(chan []byte, 64),
		matchId:  matchId,
		playerId: playerId,
	}
}

func (s *session) writePump() {
	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()
	defer s.conn.Close()

	for {
		select {
		case data, ok := <-s.outbox:
			if !ok {
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-pingTicker.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *session) send(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case s.outbox <- data:
	default:
	}
}
