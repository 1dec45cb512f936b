package auth

import (
	"context"
	"time"

	"github.com/openwork-hackathon/team-roast-royale/domain"
)

type AccountRepo interface {
	CreateAccount(ctx context.Context, username string, passwordHash string) (string, error)
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)
	GetAccountById(ctx context.Context, id string) (domain.Account, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenManager interface {
	Generate(id string, now time.Time) (string, error)
	Verify(token string) (string, error)
}
