package game

import (
	"time"

	"github.com/openwork-hackathon/team-roast-royale/betting"
)

// TimerScheduler abstracts timer creation so tests can fire callbacks by
// hand. The returned cancel reports whether the timer was stopped before
// firing.
type TimerScheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func() bool)
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// NewTimerScheduler returns the wall-clock scheduler.
func NewTimerScheduler() TimerScheduler { return realScheduler{} }

// Wagering is the slice of the betting engine the scheduler drives at phase
// boundaries.
type Wagering interface {
	InitGame(matchId string, realIds, roster []string)
	OpenRound(matchId string, roundNum int) error
	CloseAll(matchId string)
	ResolveAll(matchId string) []*betting.Resolution
	CleanupGame(matchId string)
}

// Options bundles the pacing and roster knobs for a match. Zero values are
// filled in by withDefaults.
type Options struct {
	RosterSize       int
	HumanSlots       int
	Durations        map[Phase]time.Duration
	AgentVoteChance  float64
	MinAgentDelay    time.Duration
	MaxAgentDelay    time.Duration
	FastForwardGrace time.Duration
	CleanupAfter     time.Duration
}

func (o Options) withDefaults() Options {
	if o.RosterSize == 0 {
		o.RosterSize = 16
	}
	if o.HumanSlots == 0 {
		o.HumanSlots = 2
	}
	if o.Durations == nil {
		o.Durations = DefaultDurations()
	}
	if o.AgentVoteChance == 0 {
		o.AgentVoteChance = 0.4
	}
	if o.MinAgentDelay == 0 {
		o.MinAgentDelay = 2 * time.Second
	}
	if o.MaxAgentDelay == 0 {
		o.MaxAgentDelay = 10 * time.Second
	}
	if o.FastForwardGrace == 0 {
		o.FastForwardGrace = 2 * time.Second
	}
	if o.CleanupAfter == 0 {
		o.CleanupAfter = 30 * time.Minute
	}
	return o
}
