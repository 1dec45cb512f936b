package game

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Registry holds every running match. It is an injected dependency of the
// transport handlers, never a package-level singleton, so tests can run
// isolated instances.
type Registry struct {
	opts      Options
	scheduler TimerScheduler
	publisher Publisher
	wagering  Wagering
	generator TextGenerator
	logger    zerolog.Logger

	mu           sync.RWMutex
	matches      map[string]*Match
	totalCreated int
}

func NewRegistry(opts Options, scheduler TimerScheduler, publisher Publisher, wagering Wagering, generator TextGenerator, logger zerolog.Logger) *Registry {
	return &Registry{
		opts:      opts.withDefaults(),
		scheduler: scheduler,
		publisher: publisher,
		wagering:  wagering,
		generator: generator,
		logger:    logger,
		matches:   make(map[string]*Match),
	}
}

// CreateMatch allocates a match in the lobby with the given host as its
// first real participant, registers the roster with the wagering engine and
// arms the cleanup timer.
func (r *Registry) CreateMatch(hostName string) *Match {
	r.mu.Lock()
	id := newId()
	for _, taken := r.matches[id]; taken; _, taken = r.matches[id] {
		id = newId()
	}
	r.mu.Unlock()

	m := newMatch(id, hostName, r.opts, r.scheduler, r.publisher, r.wagering, r.generator, r.logger)

	m.mu.Lock()
	realIds := m.realIdsLocked()
	roster := m.rosterIdsLocked()
	m.mu.Unlock()
	r.wagering.InitGame(id, realIds, roster)

	r.mu.Lock()
	r.matches[id] = m
	r.totalCreated++
	r.mu.Unlock()

	// Eviction is wall-clock, regardless of phase.
	r.scheduler.AfterFunc(r.opts.CleanupAfter, func() { r.Remove(id) })

	r.logger.Info().Str("match", id).Str("host", hostName).Msg("match created")
	return m
}

// Get looks up a running match.
func (r *Registry) Get(id string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	return m, ok
}

// Remove evicts a match: cancels all its timers, drops its betting books and
// deletes it from the registry. Safe to call twice.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	m, ok := r.matches[id]
	delete(r.matches, id)
	r.mu.Unlock()

	if !ok {
		return
	}
	m.shutdown()
	r.wagering.CleanupGame(id)
	r.logger.Info().Str("match", id).Msg("match evicted")
}

// MatchInfo is one row of the lobby listing.
type MatchInfo struct {
	Id          string    `json:"id"`
	Phase       Phase     `json:"phase"`
	PlayerCount int       `json:"playerCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// List snapshots all running matches.
func (r *Registry) List() []MatchInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]MatchInfo, 0, len(r.matches))
	for _, m := range r.matches {
		m.mu.Lock()
		out = append(out, MatchInfo{
			Id:          m.id,
			Phase:       m.phase,
			PlayerCount: len(m.participants),
			CreatedAt:   m.createdAt,
		})
		m.mu.Unlock()
	}
	return out
}

// ActiveCount returns the number of running matches.
func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}
