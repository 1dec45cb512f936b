package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/openwork-hackathon/team-roast-royale/betting"
	"github.com/openwork-hackathon/team-roast-royale/domain"
)

// Handler is the transport surface of a match: REST for lifecycle and
// reconnection, websocket for the live channel.
type Handler struct {
	registry *Registry
	engine   *betting.Engine
	hub      *Hub
	logger   zerolog.Logger

	chatRate rate.Limit
	upgrader websocket.Upgrader
}

func NewHandler(registry *Registry, engine *betting.Engine, hub *Hub, chatMessagesPerSec float64, logger zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		engine:   engine,
		hub:      hub,
		logger:   logger,
		chatRate: rate.Limit(chatMessagesPerSec),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Register mounts the match routes on a router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/games", h.CreateGameHandler)
	rg.GET("/games", h.ListGamesHandler)
	rg.GET("/games/:gameId", h.GameStateHandler)
	rg.POST("/games/:gameId/join", h.JoinGameHandler)
	rg.POST("/games/:gameId/advance", h.ForceAdvanceHandler)
	rg.GET("/games/:gameId/betting", h.BettingSummaryHandler)
	rg.GET("/games/:gameId/betting/:roundNum", h.RoundStateHandler)
	rg.POST("/games/:gameId/betting/:roundNum/retry-credits", h.RetryCreditsHandler)
	rg.GET("/games/:gameId/ws", h.WebsocketHandler)
}

func (h *Handler) CreateGameHandler(ctx *gin.Context) {
	var body struct {
		PlayerName string `json:"playerName"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerName == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
		return
	}

	m := h.registry.CreateMatch(body.PlayerName)
	var playerId string
	if ids := m.RealPlayerIds(); len(ids) > 0 {
		playerId = ids[0]
	}
	ctx.JSON(http.StatusOK, gin.H{"gameId": m.Id(), "playerId": playerId})
}

func (h *Handler) ListGamesHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.registry.List())
}

func (h *Handler) GameStateHandler(ctx *gin.Context) {
	m, ok := h.registry.Get(ctx.Param("gameId"))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	ctx.JSON(http.StatusOK, m.PublicState())
}

// JoinGameHandler admits a second human while the match is in the lobby.
func (h *Handler) JoinGameHandler(ctx *gin.Context) {
	m, ok := h.registry.Get(ctx.Param("gameId"))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var body struct {
		PlayerName string `json:"playerName"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerName == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
		return
	}

	p, err := m.AddHuman(body.PlayerName)
	switch {
	case errors.Is(err, ErrMatchStarted):
		ctx.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "match already started"})
	case errors.Is(err, ErrMatchFull):
		ctx.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "no human slot left"})
	case err != nil:
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
	default:
		ctx.JSON(http.StatusOK, gin.H{"playerId": p.Id})
	}
}

// ForceAdvanceHandler is the demo/test hook that skips the countdown.
func (h *Handler) ForceAdvanceHandler(ctx *gin.Context) {
	m, ok := h.registry.Get(ctx.Param("gameId"))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"phase": m.AdvancePhase()})
}

func (h *Handler) BettingSummaryHandler(ctx *gin.Context) {
	summary, ok := h.engine.GameSummary(ctx.Param("gameId"))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

func (h *Handler) RoundStateHandler(ctx *gin.Context) {
	roundNum, err := strconv.Atoi(ctx.Param("roundNum"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid round"})
		return
	}
	view, ok := h.engine.RoundState(ctx.Param("gameId"), roundNum)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Round not found"})
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// RetryCreditsHandler re-runs the ledger credits of a resolved round whose
// payouts failed to land. The stored breakdown is replayed, never recomputed,
// and already-credited payouts are skipped.
func (h *Handler) RetryCreditsHandler(ctx *gin.Context) {
	roundNum, err := strconv.Atoi(ctx.Param("roundNum"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid round"})
		return
	}
	if err := h.engine.RetryCredits(ctx.Param("gameId"), roundNum); err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "round not resolved"})
		return
	}
	view, _ := h.engine.RoundState(ctx.Param("gameId"), roundNum)
	ctx.JSON(http.StatusOK, view)
}

// WebsocketHandler upgrades the connection and runs the session pumps.
// playerId identifies a real participant for inbound commands; spectators
// connect without one and only receive events.
func (h *Handler) WebsocketHandler(ctx *gin.Context) {
	matchId := ctx.Param("gameId")
	m, ok := h.registry.Get(matchId)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	playerId := ctx.Query("playerId")
	s := newSession(conn, matchId, playerId)
	h.hub.add(s)

	if playerId != "" {
		m.SetConnected(playerId, true)
	}
	s.send(Event{Type: EventState, Payload: m.PublicState()})

	// A reconnecting bettor gets their open bets replayed so the client can
	// restore its betting panel.
	if playerId != "" {
		for _, num := range h.engine.RoundNumbers(matchId) {
			if bet, ok := h.engine.PlayerBet(matchId, num, playerId); ok {
				s.send(Event{Type: "game:bet-placed", Payload: gin.H{"roundNum": num, "bet": bet}})
			}
		}
	}

	go s.writePump()
	h.readPump(s, m)
}

type clientCommand struct {
	Type     string  `json:"type"`
	Text     string  `json:"text,omitempty"`
	TargetId string  `json:"targetId,omitempty"`
	RoundNum int     `json:"roundNum,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
}

func (h *Handler) readPump(s *session, m *Match) {
	defer func() {
		h.hub.remove(s)
		close(s.outbox)
		if s.playerId != "" {
			m.SetConnected(s.playerId, false)
		}
	}()

	limiter := rate.NewLimiter(h.chatRate, 5)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.send(Event{Type: EventError, Payload: "bad-command"})
			continue
		}
		if s.playerId == "" {
			s.send(Event{Type: EventError, Payload: "spectators-cannot-act"})
			continue
		}

		switch cmd.Type {
		case "game:message":
			if !limiter.Allow() {
				s.send(Event{Type: EventError, Payload: "slow-down"})
				continue
			}
			if !m.InChatPhase() {
				s.send(Event{Type: EventError, Payload: "Chat is closed during this phase"})
				continue
			}
			if _, err := m.AddMessage(s.playerId, cmd.Text); err != nil {
				s.send(Event{Type: EventError, Payload: err.Error()})
			}

		case "game:vote":
			if !m.CastVote(s.playerId, cmd.TargetId) {
				s.send(Event{Type: EventError, Payload: "vote rejected"})
			}

		case "game:bet-place":
			h.placeBet(s, cmd)

		case "skipPhase":
			m.AdvancePhase()

		default:
			s.send(Event{Type: EventError, Payload: "unknown-command"})
		}
	}
}

func (h *Handler) placeBet(s *session, cmd clientCommand) {
	bet, err := h.engine.PlaceBet(s.matchId, cmd.RoundNum, s.playerId, cmd.TargetId, cmd.Amount)
	if err != nil {
		// Rejections go only to the acting participant.
		s.send(Event{Type: EventError, Payload: betErrorString(err)})
		return
	}

	s.send(Event{Type: "game:bet-placed", Payload: gin.H{"roundNum": cmd.RoundNum, "bet": bet}})
	if state, ok := h.engine.RoundState(s.matchId, cmd.RoundNum); ok {
		h.hub.Publish(s.matchId, Event{Type: EventBettingPool, Payload: gin.H{
			"gameId":    s.matchId,
			"roundNum":  cmd.RoundNum,
			"totalPool": state.TotalPool,
			"betCount":  state.BetCount,
		}})
	}
}

func betErrorString(err error) string {
	switch {
	case errors.Is(err, betting.ErrRoundClosed):
		return "Betting closed"
	case errors.Is(err, betting.ErrUnknownRound):
		return "Round not found"
	case errors.Is(err, betting.ErrInvalidTarget):
		return "Invalid player target"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient RSTR balance"
	default:
		return "Bet rejected"
	}
}
