package domain

import "errors"

// Errors shared between the betting and token packages. Anything scoped to a
// single package stays a local sentinel there; handlers translate either kind
// into transport-level responses.
var (
	ErrInsufficientFunds = errors.New("insufficient-funds")
	ErrInvalidAmount     = errors.New("invalid-amount")
)

// Auth / storage errors.
var (
	ErrAccountNotFound   = errors.New("account-not-found")
	ErrDuplicateUsername = errors.New("duplicate-username")

	ErrInvalidSigningAlg     = errors.New("invalid-signing-alg")
	ErrInvalidTokenSignature = errors.New("invalid-token-signature")
	ErrCorruptedToken        = errors.New("corrupted-token")
	ErrExpiredToken          = errors.New("expired-token")

	UnexpectedDatabaseError           = errors.New("unexpected-database-error")
	UnexpectedTokenGenerationError    = errors.New("unexpected-token-generation-error")
	UnexpectedTokenVerificationError  = errors.New("unexpected-token-verification-error")
	UnexpectedPasswordHashError       = errors.New("unexpected-password-hash-error")
	UnexpectedPasswordComparisonError = errors.New("unexpected-password-comparison-error")
)
