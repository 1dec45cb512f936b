package betting

import "time"

// BetView is a bet flattened for the transport layer.
type BetView struct {
	PlayerId string    `json:"playerId"`
	TargetId string    `json:"targetPlayerId"`
	Amount   float64   `json:"amount"`
	PlacedAt time.Time `json:"timestamp"`
}

// RoundView is the read-only projection of one round.
type RoundView struct {
	Status    RoundStatus `json:"status"`
	TotalPool float64     `json:"totalPool"`
	BetCount  int         `json:"betCount"`
	Bets      []BetView   `json:"bets"`
	Result    *Resolution `json:"result,omitempty"`
}

// GameSummaryView rolls up every round plus participant balances.
type GameSummaryView struct {
	MatchId  string             `json:"gameId"`
	Rounds   map[int]RoundView  `json:"rounds"`
	Balances map[string]float64 `json:"playerBalances"`
}

// RoundState returns the projection for one round, or ok=false.
func (e *Engine) RoundState(matchId string, roundNum int) (RoundView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundStateLocked(matchId, roundNum)
}

func (e *Engine) roundStateLocked(matchId string, roundNum int) (RoundView, bool) {
	b, ok := e.games[matchId]
	if !ok {
		return RoundView{}, false
	}
	r, ok := b.rounds[roundNum]
	if !ok {
		return RoundView{}, false
	}

	view := RoundView{
		Status:    r.status,
		TotalPool: r.total,
		BetCount:  len(r.bets),
		Bets:      make([]BetView, 0, len(r.bets)),
		Result:    r.result,
	}
	for playerId, bet := range r.bets {
		view.Bets = append(view.Bets, BetView{
			PlayerId: playerId,
			TargetId: bet.TargetId,
			Amount:   bet.Amount,
			PlacedAt: bet.PlacedAt,
		})
	}
	return view, true
}

// GameSummary returns every round projection and current balances for the
// match roster, or ok=false for an unknown match.
func (e *Engine) GameSummary(matchId string) (GameSummaryView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.games[matchId]
	if !ok {
		return GameSummaryView{}, false
	}

	summary := GameSummaryView{
		MatchId:  matchId,
		Rounds:   make(map[int]RoundView, len(b.rounds)),
		Balances: make(map[string]float64, len(b.roster)),
	}
	for num := range b.rounds {
		if view, ok := e.roundStateLocked(matchId, num); ok {
			summary.Rounds[num] = view
		}
	}
	for id := range b.roster {
		summary.Balances[id] = e.ledger.Balance(id)
	}
	return summary, true
}

// PlayerBet returns a bettor's current bet in a round, if any.
func (e *Engine) PlayerBet(matchId string, roundNum int, playerId string) (Bet, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.games[matchId]
	if !ok {
		return Bet{}, false
	}
	r, ok := b.rounds[roundNum]
	if !ok {
		return Bet{}, false
	}
	bet, ok := r.bets[playerId]
	return bet, ok
}
