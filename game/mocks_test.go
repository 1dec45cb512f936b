package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/openwork-hackathon/team-roast-royale/betting"
)

// --- TimerScheduler ---

type scheduledCall struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

// fakeScheduler records every AfterFunc and lets tests fire callbacks by
// hand instead of waiting on the wall clock.
type fakeScheduler struct {
	mu    sync.Mutex
	calls []*scheduledCall
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &scheduledCall{delay: d, f: f}
	s.calls = append(s.calls, c)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c.stopped || c.fired {
			return false
		}
		c.stopped = true
		return true
	}
}

// pending returns the not-yet-fired, not-stopped callbacks with the given
// delay. Zero delay matches everything.
func (s *fakeScheduler) pending(delay time.Duration) []*scheduledCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*scheduledCall
	for _, c := range s.calls {
		if c.stopped || c.fired {
			continue
		}
		if delay == 0 || c.delay == delay {
			out = append(out, c)
		}
	}
	return out
}

// fire runs the callbacks outside the lock, marking them fired first so a
// callback that schedules more timers doesn't loop.
func (s *fakeScheduler) fire(calls []*scheduledCall) {
	s.mu.Lock()
	runnable := make([]func(), 0, len(calls))
	for _, c := range calls {
		if c.stopped || c.fired {
			continue
		}
		c.fired = true
		runnable = append(runnable, c.f)
	}
	s.mu.Unlock()

	for _, f := range runnable {
		f()
	}
}

// --- Publisher ---

type recordPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordPublisher) Publish(matchId string, event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordPublisher) ofType(eventType string) []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Event
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// --- Wagering ---

type fakeWagering struct {
	mu          sync.Mutex
	initCalls   int
	openRounds  []int
	closedAll   int
	resolvedAll int
	cleaned     []string
}

func (w *fakeWagering) InitGame(matchId string, realIds, roster []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.initCalls++
}

func (w *fakeWagering) OpenRound(matchId string, roundNum int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.openRounds = append(w.openRounds, roundNum)
	return nil
}

func (w *fakeWagering) CloseAll(matchId string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closedAll++
}

func (w *fakeWagering) ResolveAll(matchId string) []*betting.Resolution {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resolvedAll++
	return nil
}

func (w *fakeWagering) CleanupGame(matchId string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cleaned = append(w.cleaned, matchId)
}

// --- TextGenerator ---

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(context.Context, GenerationRequest) (string, error) {
	return g.text, g.err
}

var errGeneratorDown = errors.New("generator down")

// captureGenerator records every request and answers with a fixed line.
type captureGenerator struct {
	mu   sync.Mutex
	reqs []GenerationRequest
}

func (g *captureGenerator) Generate(_ context.Context, req GenerationRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reqs = append(g.reqs, req)
	return "canned response", nil
}

func (g *captureGenerator) requests() []GenerationRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]GenerationRequest(nil), g.reqs...)
}

func testLogger() zerolog.Logger { return zerolog.Nop() }
