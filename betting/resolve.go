package betting

import (
	"sort"
	"time"
)

type PayoutType string

const (
	PayoutHouse        PayoutType = "house"
	PayoutMostHuman    PayoutType = "most_human"
	PayoutCorrectGuess PayoutType = "correct_guess"
)

// Payout is one credit owed from a resolved pool. Beneficiary is empty for
// the house payout. Credited flips once the ledger credit lands, so a failed
// credit can be retried from the stored breakdown without recomputing.
type Payout struct {
	Type        PayoutType `json:"type"`
	Beneficiary string     `json:"playerId,omitempty"`
	Amount      float64    `json:"amount"`
	Reason      string     `json:"reason,omitempty"`
	Credited    bool       `json:"credited"`
}

// Resolution is the full outcome of one round.
type Resolution struct {
	TotalPool       float64   `json:"totalPool"`
	HouseCut        float64   `json:"houseCut"`
	MostHumanId     string    `json:"mostHumanPlayerId,omitempty"`
	CorrectGuessers []string  `json:"correctGuessers"`
	Payouts         []Payout  `json:"payouts"`
	ResolvedAt      time.Time `json:"resolvedAt"`
}

// ResolveRound splits the closed pool 5/30/65 (house / most-human / correct
// guessers) and credits the winners. Resolving an already-resolved round is a
// no-op returning the stored result. An empty pool resolves to an empty
// payout list.
//
// Most-human: the bettor who staked the most on the target that drew the
// most bets; ties break lexicographically by participant id. Correct
// guessers split their pool evenly; with zero correct guessers that pool
// rolls into the house payout.
func (e *Engine) ResolveRound(matchId string, roundNum int) (*Resolution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.games[matchId]
	if !ok {
		return nil, ErrUnknownGame
	}
	r, ok := b.rounds[roundNum]
	if !ok {
		return nil, ErrUnknownRound
	}
	if r.status == StatusResolved {
		return r.result, nil
	}

	r.status = StatusResolved

	if r.total == 0 {
		r.result = &Resolution{Payouts: []Payout{}, CorrectGuessers: []string{}, ResolvedAt: time.Now()}
		return r.result, nil
	}

	houseCut := r.total * e.split.House
	mostHumanPool := r.total * e.split.MostHuman
	guessersPool := r.total * e.split.Guessers

	mostHumanId := mostBetTarget(r.bets)
	biggestBettor := biggestBettorOn(r.bets, mostHumanId)

	correct := make([]string, 0, len(r.bets))
	for bettorId, bet := range r.bets {
		if _, real := b.realIds[bet.TargetId]; real {
			correct = append(correct, bettorId)
		}
	}
	sort.Strings(correct)

	res := &Resolution{
		TotalPool:       r.total,
		HouseCut:        houseCut,
		MostHumanId:     mostHumanId,
		CorrectGuessers: correct,
		ResolvedAt:      time.Now(),
	}

	house := Payout{Type: PayoutHouse, Amount: houseCut}
	if len(correct) == 0 {
		house.Amount += guessersPool
		house.Reason = "no correct guessers, guessers pool rolled into house"
	}
	res.Payouts = append(res.Payouts, house)

	if biggestBettor != "" {
		res.Payouts = append(res.Payouts, Payout{
			Type:        PayoutMostHuman,
			Beneficiary: biggestBettor,
			Amount:      mostHumanPool,
			Reason:      "biggest bet on most-voted participant " + mostHumanId,
		})
	}

	if len(correct) > 0 {
		perGuesser := guessersPool / float64(len(correct))
		for _, id := range correct {
			res.Payouts = append(res.Payouts, Payout{
				Type:        PayoutCorrectGuess,
				Beneficiary: id,
				Amount:      perGuesser,
				Reason:      "correctly identified the real participant",
			})
		}
	}

	e.houseCollected += house.Amount
	e.creditPayouts(res)

	r.result = res
	e.logger.Info().
		Str("match", matchId).Int("round", roundNum).
		Float64("pool", res.TotalPool).Float64("house", house.Amount).
		Int("correct", len(correct)).
		Msg("round resolved")
	return res, nil
}

// ResolveAll resolves every round of a match in order. Called at reveal.
func (e *Engine) ResolveAll(matchId string) []*Resolution {
	var out []*Resolution
	for _, num := range e.RoundNumbers(matchId) {
		res, err := e.ResolveRound(matchId, num)
		if err != nil {
			continue
		}
		out = append(out, res)
	}
	return out
}

// RetryCredits re-attempts payouts whose ledger credit failed during
// resolution. The computed breakdown is never discarded.
func (e *Engine) RetryCredits(matchId string, roundNum int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.games[matchId]
	if !ok {
		return ErrUnknownGame
	}
	r, ok := b.rounds[roundNum]
	if !ok || r.result == nil {
		return ErrUnknownRound
	}
	e.creditPayouts(r.result)
	return nil
}

func (e *Engine) creditPayouts(res *Resolution) {
	for i := range res.Payouts {
		p := &res.Payouts[i]
		if p.Credited || p.Type == PayoutHouse || p.Amount <= 0 {
			continue
		}
		if err := e.ledger.Credit(p.Beneficiary, p.Amount, string(p.Type)+"_prize"); err != nil {
			e.logger.Error().Err(err).Str("beneficiary", p.Beneficiary).Msg("payout credit failed")
			continue
		}
		p.Credited = true
	}
}

// mostBetTarget returns the target with the most bets on it, lexicographic
// smallest id on ties. Empty string when there are no bets.
func mostBetTarget(bets map[string]Bet) string {
	counts := make(map[string]int)
	for _, bet := range bets {
		counts[bet.TargetId]++
	}

	var winner string
	var max int
	for targetId, count := range counts {
		if count > max || (count == max && (winner == "" || targetId < winner)) {
			max = count
			winner = targetId
		}
	}
	return winner
}

// biggestBettorOn returns the bettor who staked the most on targetId,
// lexicographic smallest bettor id on ties.
func biggestBettorOn(bets map[string]Bet, targetId string) string {
	var winner string
	var max float64
	for bettorId, bet := range bets {
		if bet.TargetId != targetId {
			continue
		}
		if bet.Amount > max || (bet.Amount == max && (winner == "" || bettorId < winner)) {
			max = bet.Amount
			winner = bettorId
		}
	}
	return winner
}
