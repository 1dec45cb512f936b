package auth

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/openwork-hackathon/team-roast-royale/domain"
)

const maxPasswordLength = 256

var usernameFormat = regexp.MustCompile("^[a-z0-9_]{3,20}$")

type Service struct {
	accountRepo    AccountRepo
	passwordHasher PasswordHasher
	tokenManager   TokenManager
}

func NewService(accountRepo AccountRepo, passwordHasher PasswordHasher, tokenManager TokenManager) *Service {
	return &Service{accountRepo, passwordHasher, tokenManager}
}

func (s *Service) Signup(ctx context.Context, username, password string) (string, error) {
	if !usernameFormat.MatchString(username) {
		return "", ErrInvalidUsernameFormat
	}

	if utf8.RuneCountInString(password) < 8 {
		return "", ErrWeakPassword
	}
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	passwordHash, err := s.passwordHasher.Hash(password)
	if err != nil {
		return "", err
	}

	id, err := s.accountRepo.CreateAccount(ctx, username, passwordHash)
	if err != nil {
		return "", err
	}

	return s.tokenManager.Generate(id, time.Now())
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.accountRepo.GetAccountByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	match, err := s.passwordHasher.Compare(account.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrIncorrectPassword
	}

	return s.tokenManager.Generate(account.Id, time.Now())
}

// VerifyToken returns the account id carried by a valid token.
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokenManager.Verify(token)
}

// GenerateToken mints a fresh token for an already verified account id.
func (s *Service) GenerateToken(id string) (string, error) {
	return s.tokenManager.Generate(id, time.Now())
}

// AccountExists reports whether an id still maps to a stored account.
func (s *Service) AccountExists(ctx context.Context, id string) (bool, error) {
	_, err := s.accountRepo.GetAccountById(ctx, id)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
