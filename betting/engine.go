package betting

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Ledger is the slice of the token ledger the engine needs. Debit is atomic:
// the balance check and the decrement happen as one step.
type Ledger interface {
	Balance(id string) float64
	Debit(id string, amount float64, reason string) error
	Credit(id string, amount float64, reason string) error
	InitParticipant(id string) float64
}

// Split is the pool breakdown applied at resolution. The three fractions
// must sum to 1.
type Split struct {
	House     float64
	MostHuman float64
	Guessers  float64
}

var DefaultSplit = Split{House: 0.05, MostHuman: 0.30, Guessers: 0.65}

type RoundStatus string

const (
	StatusOpen     RoundStatus = "open"
	StatusClosed   RoundStatus = "closed"
	StatusResolved RoundStatus = "resolved"
)

// Bet is one bettor's stake on who they think is real. One bet per bettor
// per round; a replacement refunds the earlier stake.
type Bet struct {
	TargetId string    `json:"targetPlayerId"`
	Amount   float64   `json:"amount"`
	PlacedAt time.Time `json:"timestamp"`
}

type round struct {
	status   RoundStatus
	bets     map[string]Bet
	total    float64
	openedAt time.Time
	closedAt time.Time
	result   *Resolution
}

type book struct {
	realIds map[string]struct{}
	roster  map[string]struct{}
	rounds  map[int]*round
}

// Engine runs per-(match, round) betting pools against the shared ledger.
type Engine struct {
	mu     sync.Mutex
	ledger Ledger
	split  Split
	logger zerolog.Logger

	games          map[string]*book
	houseCollected float64
}

func NewEngine(ledger Ledger, split Split, logger zerolog.Logger) *Engine {
	return &Engine{
		ledger: ledger,
		split:  split,
		logger: logger,
		games:  make(map[string]*book),
	}
}

// InitGame registers a match's roster and its real participant ids, and makes
// sure every participant has a ledger entry.
func (e *Engine) InitGame(matchId string, realIds, roster []string) {
	b := &book{
		realIds: make(map[string]struct{}, len(realIds)),
		roster:  make(map[string]struct{}, len(roster)),
		rounds:  make(map[int]*round),
	}
	for _, id := range realIds {
		b.realIds[id] = struct{}{}
	}
	for _, id := range roster {
		b.roster[id] = struct{}{}
		e.ledger.InitParticipant(id)
	}

	e.mu.Lock()
	e.games[matchId] = b
	e.mu.Unlock()

	e.logger.Info().Str("match", matchId).Int("roster", len(roster)).Msg("betting initialized")
}

// OpenRound creates an empty pool for (match, round).
func (e *Engine) OpenRound(matchId string, roundNum int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.games[matchId]
	if !ok {
		return ErrUnknownGame
	}

	b.rounds[roundNum] = &round{
		status:   StatusOpen,
		bets:     make(map[string]Bet),
		openedAt: time.Now(),
	}
	e.logger.Debug().Str("match", matchId).Int("round", roundNum).Msg("betting opened")
	return nil
}

// PlaceBet debits the bettor and records the bet in one critical section.
// A bettor's second bet in the same round replaces the first: the earlier
// stake is refunded before the new debit.
func (e *Engine) PlaceBet(matchId string, roundNum int, bettorId, targetId string, amount float64) (Bet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.games[matchId]
	if !ok {
		return Bet{}, ErrUnknownGame
	}
	r, ok := b.rounds[roundNum]
	if !ok {
		return Bet{}, ErrUnknownRound
	}
	if r.status != StatusOpen {
		return Bet{}, ErrRoundClosed
	}
	if _, ok := b.roster[targetId]; !ok {
		return Bet{}, fmt.Errorf("%w: %s", ErrInvalidTarget, targetId)
	}

	if prev, ok := r.bets[bettorId]; ok {
		// Refund before replacing so an insufficient-funds failure below
		// leaves the bettor with their stake back and no bet.
		_ = e.ledger.Credit(bettorId, prev.Amount, fmt.Sprintf("bet_replaced_round_%d", roundNum))
		r.total -= prev.Amount
		delete(r.bets, bettorId)
	}

	if err := e.ledger.Debit(bettorId, amount, fmt.Sprintf("bet_round_%d", roundNum)); err != nil {
		return Bet{}, err
	}

	bet := Bet{TargetId: targetId, Amount: amount, PlacedAt: time.Now()}
	r.bets[bettorId] = bet
	r.total += amount

	e.logger.Debug().
		Str("match", matchId).Int("round", roundNum).
		Str("bettor", bettorId).Str("target", targetId).Float64("amount", amount).
		Msg("bet placed")
	return bet, nil
}

// CloseRound stops the round from accepting bets.
func (e *Engine) CloseRound(matchId string, roundNum int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closeLocked(matchId, roundNum)
}

// CloseAll closes every open round of a match. Called at the voting boundary.
func (e *Engine) CloseAll(matchId string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.games[matchId]
	if !ok {
		return
	}
	for num, r := range b.rounds {
		if r.status == StatusOpen {
			_ = e.closeLocked(matchId, num)
		}
	}
}

func (e *Engine) closeLocked(matchId string, roundNum int) error {
	b, ok := e.games[matchId]
	if !ok {
		return ErrUnknownGame
	}
	r, ok := b.rounds[roundNum]
	if !ok {
		return ErrUnknownRound
	}
	if r.status == StatusOpen {
		r.status = StatusClosed
		r.closedAt = time.Now()
		e.logger.Debug().Str("match", matchId).Int("round", roundNum).Float64("pool", r.total).Msg("betting closed")
	}
	return nil
}

// RoundNumbers returns the round numbers a match has, ascending.
func (e *Engine) RoundNumbers(matchId string) []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.games[matchId]
	if !ok {
		return nil
	}
	nums := make([]int, 0, len(b.rounds))
	for n := range b.rounds {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// HouseCollected is the cumulative house take across all resolved rounds.
func (e *Engine) HouseCollected() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.houseCollected
}

// CleanupGame drops a match's books. Round results are gone after this.
func (e *Engine) CleanupGame(matchId string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.games, matchId)
}
