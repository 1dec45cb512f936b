package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Participant is one roster slot. Agents are immutable for the match's
// lifetime; real participants only toggle connectivity.
type Participant struct {
	Id        string  `json:"id"`
	Name      string  `json:"name"`
	IsReal    bool    `json:"-"`
	Connected bool    `json:"isConnected"`
	Persona   Persona `json:"-"`
}

// Message is one chat line. The log is append-only.
type Message struct {
	Id         string    `json:"id"`
	PlayerId   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Text       string    `json:"text"`
	Phase      Phase     `json:"phase"`
	Timestamp  time.Time `json:"timestamp"`
}

// Match is the per-game state machine. All mutation happens through its
// methods under one mutex; timer callbacks carry the phase generation they
// were scheduled in and are dropped when the generation has moved on.
type Match struct {
	id        string
	createdAt time.Time

	opts      Options
	scheduler TimerScheduler
	publisher Publisher
	wagering  Wagering
	generator TextGenerator
	logger    zerolog.Logger

	mu               sync.Mutex
	phase            Phase
	phaseGen         int
	phaseStartedAt   time.Time
	participants     []*Participant
	messages         []Message
	votes            map[string]string // voter id -> target id
	currentPrompt    string
	roastOrder       []string
	fastForwardArmed bool
	cancelCountdown  func() bool
	cancelTick       func() bool
}

func newId() string {
	return uuid.NewString()[:8]
}

func newMatch(id, hostName string, opts Options, scheduler TimerScheduler, publisher Publisher, wagering Wagering, generator TextGenerator, logger zerolog.Logger) *Match {
	m := &Match{
		id:        id,
		createdAt: time.Now(),
		opts:      opts,
		scheduler: scheduler,
		publisher: publisher,
		wagering:  wagering,
		generator: generator,
		logger:    logger.With().Str("match", id).Logger(),
		phase:     PhaseLobby,
		votes:     make(map[string]string),
	}

	host := &Participant{Id: newId(), Name: hostName, IsReal: true, Connected: true}
	m.participants = append(m.participants, host)

	personas := make([]Persona, len(Personas))
	copy(personas, Personas)
	rand.Shuffle(len(personas), func(i, j int) { personas[i], personas[j] = personas[j], personas[i] })

	agentCount := opts.RosterSize - 1
	if agentCount > len(personas) {
		agentCount = len(personas)
	}
	for i := 0; i < agentCount; i++ {
		m.participants = append(m.participants, &Participant{
			Id:        newId(),
			Name:      personas[i].Name,
			Connected: true,
			Persona:   personas[i],
		})
	}
	m.shuffleRosterLocked()

	m.mu.Lock()
	m.phaseStartedAt = time.Now()
	m.schedulePhaseTimersLocked(m.phaseGen)
	m.mu.Unlock()

	return m
}

func (m *Match) Id() string { return m.id }

func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Match) shuffleRosterLocked() {
	rand.Shuffle(len(m.participants), func(i, j int) {
		m.participants[i], m.participants[j] = m.participants[j], m.participants[i]
	})
}

func (m *Match) findLocked(id string) *Participant {
	for _, p := range m.participants {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func (m *Match) realIdsLocked() []string {
	var ids []string
	for _, p := range m.participants {
		if p.IsReal {
			ids = append(ids, p.Id)
		}
	}
	return ids
}

// RealPlayerIds lists the human participants. Callers on the wire side use
// it to hand the creator their own id; the projection layer never leaks it.
func (m *Match) RealPlayerIds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.realIdsLocked()
}

func (m *Match) rosterIdsLocked() []string {
	ids := make([]string, 0, len(m.participants))
	for _, p := range m.participants {
		ids = append(ids, p.Id)
	}
	return ids
}

// AddHuman admits a second real participant. Only allowed in the lobby and
// while a human slot is free; an agent is dropped so the roster size stays
// fixed, and the display order is reshuffled.
func (m *Match) AddHuman(name string) (*Participant, error) {
	m.mu.Lock()

	if m.phase != PhaseLobby {
		m.mu.Unlock()
		return nil, ErrMatchStarted
	}

	humans := 0
	for _, p := range m.participants {
		if p.IsReal {
			humans++
		}
	}
	if humans >= m.opts.HumanSlots {
		m.mu.Unlock()
		return nil, ErrMatchFull
	}

	// Swap out one agent to keep the roster size fixed.
	for i := len(m.participants) - 1; i >= 0; i-- {
		if !m.participants[i].IsReal {
			m.participants = append(m.participants[:i], m.participants[i+1:]...)
			break
		}
	}

	p := &Participant{Id: newId(), Name: name, IsReal: true, Connected: true}
	m.participants = append(m.participants, p)
	m.shuffleRosterLocked()

	realIds := m.realIdsLocked()
	roster := m.rosterIdsLocked()
	m.mu.Unlock()

	// Re-register the betting roster; no rounds exist before the lobby ends.
	m.wagering.InitGame(m.id, realIds, roster)

	m.publisher.Publish(m.id, Event{Type: EventPlayerJoined, Payload: p})
	m.publisher.Publish(m.id, Event{Type: EventState, Payload: m.PublicState()})
	return p, nil
}

// SetConnected toggles a real participant's connectivity flag.
func (m *Match) SetConnected(participantId string, connected bool) {
	m.mu.Lock()
	p := m.findLocked(participantId)
	if p == nil || !p.IsReal {
		m.mu.Unlock()
		return
	}
	p.Connected = connected
	m.mu.Unlock()

	eventType := EventPlayerJoined
	if !connected {
		eventType = EventPlayerLeft
	}
	m.publisher.Publish(m.id, Event{Type: eventType, Payload: map[string]string{"playerId": participantId}})
}

// AddMessage appends a chat line tagged with the current phase. Unknown
// participants are rejected; phase restrictions are the transport's concern.
func (m *Match) AddMessage(participantId, text string) (*Message, error) {
	m.mu.Lock()

	p := m.findLocked(participantId)
	if p == nil {
		m.mu.Unlock()
		return nil, ErrUnknownParticipant
	}

	msg := Message{
		Id:         newId(),
		PlayerId:   p.Id,
		PlayerName: p.Name,
		Text:       text,
		Phase:      m.phase,
		Timestamp:  time.Now(),
	}
	m.messages = append(m.messages, msg)
	m.mu.Unlock()

	m.publisher.Publish(m.id, Event{Type: EventMessage, Payload: msg})
	return &msg, nil
}

// InChatPhase reports whether messages are currently accepted.
func (m *Match) InChatPhase() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return chatPhases[m.phase]
}

// CastVote records a vote during the voting phase. A voter's later vote
// replaces their earlier one. Once every roster member has voted the match
// fast-forwards to reveal after a short grace delay.
func (m *Match) CastVote(voterId, targetId string) bool {
	m.mu.Lock()

	if m.phase != PhaseVoting {
		m.mu.Unlock()
		return false
	}
	if m.findLocked(voterId) == nil || m.findLocked(targetId) == nil {
		m.mu.Unlock()
		return false
	}

	m.votes[voterId] = targetId
	counts := m.voteCountsLocked()

	armFastForward := len(m.votes) >= len(m.participants) && !m.fastForwardArmed
	gen := m.phaseGen
	if armFastForward {
		m.fastForwardArmed = true
	}
	m.mu.Unlock()

	m.publisher.Publish(m.id, Event{Type: EventVoteUpdate, Payload: counts})

	if armFastForward {
		m.scheduler.AfterFunc(m.opts.FastForwardGrace, func() { m.advance(gen) })
	}
	return true
}

// AdvancePhase forces the next transition. Exposed for the test/demo hook;
// timers call the generation-checked variant.
func (m *Match) AdvancePhase() Phase {
	return m.advance(-1)
}

// advance moves to the successor phase. When expectGen >= 0 the transition
// only happens if the match is still in the generation the caller saw;
// stale timer callbacks fall through without effect.
func (m *Match) advance(expectGen int) Phase {
	m.mu.Lock()

	if expectGen >= 0 && m.phaseGen != expectGen {
		p := m.phase
		m.mu.Unlock()
		return p
	}

	next, ok := nextPhase[m.phase]
	if !ok {
		p := m.phase
		m.mu.Unlock()
		return p
	}

	m.cancelTimersLocked()
	m.phase = next
	m.phaseGen++
	gen := m.phaseGen
	m.phaseStartedAt = time.Now()
	m.fastForwardArmed = false

	switch next {
	case PhaseRound1:
		m.currentPrompt = hotTakePrompts[rand.IntN(len(hotTakePrompts))]
	case PhaseRound2:
		m.roastOrder = m.rosterIdsLocked()
		rand.Shuffle(len(m.roastOrder), func(i, j int) {
			m.roastOrder[i], m.roastOrder[j] = m.roastOrder[j], m.roastOrder[i]
		})
	case PhaseRound3:
		m.currentPrompt = chaosPrompt
	case PhaseVoting:
		m.autoVoteLocked()
	}

	m.schedulePhaseTimersLocked(gen)

	phasePayload := PhaseChangePayload{
		Phase:         next,
		Prompt:        m.currentPrompt,
		TimeRemaining: m.opts.Durations[next].Milliseconds(),
	}
	if next == PhaseRound2 {
		phasePayload.RoastOrder = append([]string(nil), m.roastOrder...)
	}

	var reveal *RevealPayload
	if next == PhaseReveal {
		reveal = &RevealPayload{Results: m.outcomeLocked(), RealIds: m.realIdsLocked()}
	}
	voteCounts := m.voteCountsLocked()
	m.mu.Unlock()

	m.logger.Info().Str("phase", string(next)).Msg("phase advanced")

	m.publisher.Publish(m.id, Event{Type: EventPhaseChange, Payload: phasePayload})

	switch next {
	case PhaseRound1, PhaseRound2, PhaseRound3:
		round := roundNumber(next)
		if err := m.wagering.OpenRound(m.id, round); err != nil {
			m.logger.Error().Err(err).Int("round", round).Msg("failed to open betting round")
		} else {
			m.publisher.Publish(m.id, Event{Type: EventBettingOpen, Payload: map[string]any{"gameId": m.id, "roundNum": round}})
		}
		m.scheduleAgentResponses(gen, next)
	case PhaseVoting:
		m.wagering.CloseAll(m.id)
		m.publisher.Publish(m.id, Event{Type: EventBettingClosed, Payload: map[string]any{"gameId": m.id}})
		m.publisher.Publish(m.id, Event{Type: EventVoteUpdate, Payload: voteCounts})
	case PhaseReveal:
		results := m.wagering.ResolveAll(m.id)
		m.publisher.Publish(m.id, Event{Type: EventBettingResult, Payload: results})
		m.publisher.Publish(m.id, Event{Type: EventReveal, Payload: reveal})
	}

	m.publisher.Publish(m.id, Event{Type: EventState, Payload: m.PublicState()})
	return next
}

func (m *Match) schedulePhaseTimersLocked(gen int) {
	duration, ok := m.opts.Durations[m.phase]
	if !ok || m.phase == PhaseEnded {
		return
	}
	m.cancelCountdown = m.scheduler.AfterFunc(duration, func() { m.advance(gen) })
	m.scheduleTickLocked(gen)
}

func (m *Match) scheduleTickLocked(gen int) {
	m.cancelTick = m.scheduler.AfterFunc(time.Second, func() { m.tick(gen) })
}

// tick publishes remaining time once a second until the countdown hits zero
// or the phase moves on.
func (m *Match) tick(gen int) {
	m.mu.Lock()
	if m.phaseGen != gen {
		m.mu.Unlock()
		return
	}
	remaining := m.remainingLocked()
	if remaining > 0 {
		m.scheduleTickLocked(gen)
	}
	m.mu.Unlock()

	m.publisher.Publish(m.id, Event{Type: EventTimer, Payload: remaining.Milliseconds()})
}

func (m *Match) remainingLocked() time.Duration {
	duration := m.opts.Durations[m.phase]
	remaining := duration - time.Since(m.phaseStartedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (m *Match) cancelTimersLocked() {
	if m.cancelCountdown != nil {
		m.cancelCountdown()
		m.cancelCountdown = nil
	}
	if m.cancelTick != nil {
		m.cancelTick()
		m.cancelTick = nil
	}
}

// shutdown cancels all outstanding timers and invalidates pending callbacks.
// Called on registry eviction.
func (m *Match) shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimersLocked()
	m.phaseGen++
	m.phase = PhaseEnded
}
