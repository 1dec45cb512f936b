package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openwork-hackathon/team-roast-royale/domain"
	"github.com/openwork-hackathon/team-roast-royale/token"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func (r *PostgresRepo) CreateAccount(ctx context.Context, username string, passwordHash string) (string, error) {
	row := r.pool.QueryRow(ctx, "INSERT INTO accounts(username, password_hash) VALUES($1, $2) RETURNING id", username, passwordHash)

	var id string
	err := row.Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// "23505" is the PostgreSQL error code for unique_violation
			if pgErr.Code == "23505" {
				return "", domain.ErrDuplicateUsername
			}
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return id, nil
}

func (r *PostgresRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	account := domain.Account{Username: username}

	row := r.pool.QueryRow(ctx, "SELECT id, password_hash FROM accounts WHERE username = $1", username)

	err := row.Scan(&account.Id, &account.PasswordHash)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.Account{}, domain.ErrAccountNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.Account{}, err
		default:
			return domain.Account{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return account, nil
}

func (r *PostgresRepo) GetAccountById(ctx context.Context, id string) (domain.Account, error) {
	account := domain.Account{Id: id}

	row := r.pool.QueryRow(ctx, "SELECT username, password_hash FROM accounts WHERE id = $1", id)

	err := row.Scan(&account.Username, &account.PasswordHash)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.Account{}, domain.ErrAccountNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.Account{}, err
		default:
			return domain.Account{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return account, nil
}

// RecordTransaction appends one ledger movement to the journal table.
func (r *PostgresRepo) RecordTransaction(ctx context.Context, tx token.Transaction) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO ledger_transactions(tx_type, participant_id, amount, reason, created_at) VALUES($1, $2, $3, $4, $5)",
		tx.Type, tx.ParticipantId, tx.Amount, tx.Reason, tx.Timestamp)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return nil
}

// ListTransactions returns a participant's journal, newest first.
func (r *PostgresRepo) ListTransactions(ctx context.Context, participantId string, limit int) ([]token.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT tx_type, participant_id, amount, reason, created_at FROM ledger_transactions WHERE participant_id = $1 ORDER BY created_at DESC LIMIT $2",
		participantId, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer rows.Close()

	var txs []token.Transaction
	for rows.Next() {
		var tx token.Transaction
		if err := rows.Scan(&tx.Type, &tx.ParticipantId, &tx.Amount, &tx.Reason, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return txs, nil
}
