package domain

// Account is a registered player account. Accounts own wager-token balances;
// in-match participants reference an account id when the player is real.
type Account struct {
	Id           string
	Username     string
	PasswordHash string
}
