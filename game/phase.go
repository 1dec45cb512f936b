package game

import "time"

// Phase values are the wire names the frontend already knows.
type Phase string

const (
	PhaseLobby  Phase = "lobby"
	PhaseRound1 Phase = "round1_hottakes"
	PhaseRound2 Phase = "round2_roast"
	PhaseRound3 Phase = "round3_chaos"
	PhaseVoting Phase = "voting"
	PhaseReveal Phase = "reveal"
	PhaseEnded  Phase = "ended"
)

// nextPhase is the fixed transition table. There is no transition out of
// ended; advancing an ended match is a no-op.
var nextPhase = map[Phase]Phase{
	PhaseLobby:  PhaseRound1,
	PhaseRound1: PhaseRound2,
	PhaseRound2: PhaseRound3,
	PhaseRound3: PhaseVoting,
	PhaseVoting: PhaseReveal,
	PhaseReveal: PhaseEnded,
}

// chatPhases are the phases during which messages are accepted and agents respond.
var chatPhases = map[Phase]bool{
	PhaseRound1: true,
	PhaseRound2: true,
	PhaseRound3: true,
}

// roundNumber maps a chat phase to its betting round. Zero for non-chat phases.
func roundNumber(p Phase) int {
	switch p {
	case PhaseRound1:
		return 1
	case PhaseRound2:
		return 2
	case PhaseRound3:
		return 3
	default:
		return 0
	}
}

// DefaultDurations matches the launch pacing.
func DefaultDurations() map[Phase]time.Duration {
	return map[Phase]time.Duration{
		PhaseLobby:  30 * time.Second,
		PhaseRound1: 90 * time.Second,
		PhaseRound2: 120 * time.Second,
		PhaseRound3: 90 * time.Second,
		PhaseVoting: 30 * time.Second,
		PhaseReveal: 15 * time.Second,
	}
}

var hotTakePrompts = []string{
	"Pineapple on pizza: genius or war crime?",
	"Is a hot dog a sandwich?",
	"Would you rather fight 100 duck-sized horses or 1 horse-sized duck?",
	"Tabs or spaces?",
	"Is water wet?",
	"Should toilet paper go over or under?",
	"Is cereal a soup?",
	"Are birds real?",
	"Is AI art actually art?",
	"Should you put milk before or after cereal?",
}

const chaosPrompt = "FREE FOR ALL! Say whatever you want. Accuse someone. Defend yourself. CHAOS ROUND! 🔥"
