package game

// Event names mirror the frontend socket protocol.
const (
	EventState         = "game:state"
	EventPhaseChange   = "game:phase-change"
	EventMessage       = "game:message"
	EventVoteUpdate    = "game:vote-update"
	EventTimer         = "game:timer"
	EventReveal        = "game:reveal"
	EventPlayerJoined  = "game:player-joined"
	EventPlayerLeft    = "game:player-left"
	EventBettingOpen   = "game:betting-open"
	EventBettingPool   = "game:betting-pool"
	EventBettingClosed = "game:betting-closed"
	EventBettingResult = "game:betting-result"
	EventError         = "error"
)

// Event is one outbound message to everyone watching a match.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Publisher delivers events to a match's subscribers. Implementations must
// not block: match timers publish from their callbacks.
type Publisher interface {
	Publish(matchId string, event Event)
}

// PhaseChangePayload announces a transition.
type PhaseChangePayload struct {
	Phase         Phase    `json:"phase"`
	Prompt        string   `json:"prompt,omitempty"`
	TimeRemaining int64    `json:"timeRemaining"`
	RoastOrder    []string `json:"roastOrder,omitempty"`
}

// RevealPayload exposes the outcome and the real participants.
type RevealPayload struct {
	Results []OutcomeEntry `json:"results"`
	RealIds []string       `json:"humanPlayerIds"`
}

// NopPublisher drops every event. Used where no transport is attached.
type NopPublisher struct{}

func (NopPublisher) Publish(string, Event) {}
