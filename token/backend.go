package token

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Transaction is one journal entry. Every balance mutation produces one.
type Transaction struct {
	Type          string    `json:"type"` // grant | credit | debit | buy | sell
	ParticipantId string    `json:"participantId"`
	Amount        float64   `json:"amount"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}

// TransactionStore persists journal entries outside process memory.
type TransactionStore interface {
	RecordTransaction(ctx context.Context, tx Transaction) error
}

// ValueTransferBackend is the trust boundary for value entering the ledger.
// Simulated grants every new participant a starting balance and keeps the
// journal in memory only; External grants nothing (tokens must be bought
// through the curve) and mirrors the journal to a store.
type ValueTransferBackend interface {
	StartingBalance() float64
	Record(tx Transaction)
}

type SimulatedBackend struct {
	Grant float64
}

func (b SimulatedBackend) StartingBalance() float64 { return b.Grant }
func (b SimulatedBackend) Record(Transaction)       {}

// ExternalBackend mirrors every transaction to a persistent store. Writes are
// fire-and-forget so ledger mutations never block on storage.
type ExternalBackend struct {
	Store  TransactionStore
	Logger zerolog.Logger
}

func (b *ExternalBackend) StartingBalance() float64 { return 0 }

func (b *ExternalBackend) Record(tx Transaction) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.Store.RecordTransaction(ctx, tx); err != nil {
			b.Logger.Error().Err(err).
				Str("participant", tx.ParticipantId).
				Str("type", tx.Type).
				Msg("failed to persist ledger transaction")
		}
	}()
}
