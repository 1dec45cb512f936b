package token

import (
	"fmt"
	"sync"
	"time"

	"github.com/openwork-hackathon/team-roast-royale/domain"
)

type entry struct {
	balance  float64
	address  string
	joinedAt time.Time
}

// Ledger holds per-participant wager-token balances. It is shared across all
// matches; every mutation goes through Credit/Debit (or Buy/Sell) under one
// lock, so check-and-decrement is a single atomic step.
type Ledger struct {
	mu      sync.Mutex
	curve   Curve
	backend ValueTransferBackend

	entries map[string]*entry
	journal []Transaction
	supply  float64
}

func NewLedger(curve Curve, backend ValueTransferBackend) *Ledger {
	return &Ledger{
		curve:   curve,
		backend: backend,
		entries: make(map[string]*entry),
	}
}

// InitParticipant makes sure a participant has a ledger entry, granting the
// backend's starting balance on first touch. Returns the resulting balance.
func (l *Ledger) InitParticipant(id string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if ok {
		return e.balance
	}

	grant := l.backend.StartingBalance()
	l.entries[id] = &entry{balance: grant, joinedAt: time.Now()}
	if grant > 0 {
		l.record(Transaction{Type: "grant", ParticipantId: id, Amount: grant, Reason: "starting-balance"})
	}
	return grant
}

// RegisterAddress attaches an external reserve-currency address to a participant.
func (l *Ledger) RegisterAddress(id, address string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[id]; ok {
		e.address = address
		return
	}
	l.entries[id] = &entry{address: address, joinedAt: time.Now()}
}

func (l *Ledger) Balance(id string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[id]; ok {
		return e.balance
	}
	return 0
}

// Credit adds amount to a participant's balance. Rejects non-positive amounts.
func (l *Ledger) Credit(id string, amount float64, reason string) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if !ok {
		e = &entry{joinedAt: time.Now()}
		l.entries[id] = e
	}
	e.balance += amount
	l.record(Transaction{Type: "credit", ParticipantId: id, Amount: amount, Reason: reason})
	return nil
}

// Debit removes amount from a participant's balance. The sufficiency check
// and the decrement happen under the same lock.
func (l *Ledger) Debit(id string, amount float64, reason string) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if !ok || e.balance < amount {
		return fmt.Errorf("%w: balance %.2f, debit %.2f", domain.ErrInsufficientFunds, l.balanceLocked(id), amount)
	}
	e.balance -= amount
	l.record(Transaction{Type: "debit", ParticipantId: id, Amount: amount, Reason: reason})
	return nil
}

func (l *Ledger) balanceLocked(id string) float64 {
	if e, ok := l.entries[id]; ok {
		return e.balance
	}
	return 0
}

// BuyResult reports the outcome of a curve purchase.
type BuyResult struct {
	TokensReceived float64 `json:"tokensReceived"`
	ReserveSpent   float64 `json:"reserveSpent"`
	NewBalance     float64 `json:"newBalance"`
}

// Buy mints tokens along the curve for reserveIn and credits them to id.
func (l *Ledger) Buy(id string, reserveIn float64) (BuyResult, error) {
	if reserveIn <= 0 {
		return BuyResult{}, domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	minted := l.curve.BuyAmount(reserveIn, l.supply)
	if minted <= 0 {
		return BuyResult{}, domain.ErrInvalidAmount
	}

	l.supply += minted

	e, ok := l.entries[id]
	if !ok {
		e = &entry{joinedAt: time.Now()}
		l.entries[id] = e
	}
	e.balance += minted
	l.record(Transaction{Type: "buy", ParticipantId: id, Amount: minted, Reason: fmt.Sprintf("reserve %.2f", reserveIn)})

	return BuyResult{TokensReceived: minted, ReserveSpent: reserveIn, NewBalance: e.balance}, nil
}

// SellResult reports the outcome of a curve sale.
type SellResult struct {
	ReserveReceived float64 `json:"reserveReceived"`
	TokensSold      float64 `json:"tokensSold"`
	NewBalance      float64 `json:"newBalance"`
}

// Sell burns tokens back down the curve, returning reserve currency. A sell
// exceeding the minted supply is rejected so supply never goes negative.
func (l *Ledger) Sell(id string, tokens float64) (SellResult, error) {
	if tokens <= 0 {
		return SellResult{}, domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if !ok || e.balance < tokens {
		return SellResult{}, domain.ErrInsufficientFunds
	}
	if tokens > l.supply {
		// Granted balances are not backed by minted supply; only tokens
		// bought on the curve can be sold back onto it.
		return SellResult{}, fmt.Errorf("%w: minted supply %.2f, sell %.2f", domain.ErrInvalidAmount, l.supply, tokens)
	}

	reserveOut := l.curve.SellReturn(tokens, l.supply)

	e.balance -= tokens
	l.supply -= tokens
	l.record(Transaction{Type: "sell", ParticipantId: id, Amount: tokens, Reason: fmt.Sprintf("reserve %.2f", reserveOut)})

	return SellResult{ReserveReceived: reserveOut, TokensSold: tokens, NewBalance: e.balance}, nil
}

// PriceInfo is the outward projection of the curve state.
type PriceInfo struct {
	BuyPrice    float64 `json:"buyPrice"`
	SellPrice   float64 `json:"sellPrice"`
	TotalSupply float64 `json:"totalSupply"`
	MaxSupply   float64 `json:"maxSupply"`
}

func (l *Ledger) Price() PriceInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	return PriceInfo{
		BuyPrice:    l.curve.PriceAt(l.supply),
		SellPrice:   l.curve.SellReturn(1, l.supply),
		TotalSupply: l.supply,
		MaxSupply:   l.curve.MaxSupply,
	}
}

// Transactions returns a copy of the in-memory journal.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Transaction, len(l.journal))
	copy(out, l.journal)
	return out
}

// TotalBalances sums every participant balance. Used by conservation checks
// and the operator summary endpoint.
func (l *Ledger) TotalBalances() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sum float64
	for _, e := range l.entries {
		sum += e.balance
	}
	return sum
}

func (l *Ledger) record(tx Transaction) {
	tx.Timestamp = time.Now()
	l.journal = append(l.journal, tx)
	l.backend.Record(tx)
}
