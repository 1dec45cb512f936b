package game

import (
	"math/rand/v2"
	"sort"
	"time"
)

// autoVoteLocked makes every agent vote on entry to the voting phase. With
// probability AgentVoteChance an agent picks a real participant (uniformly
// when there are two); otherwise a uniform non-self pick. Deterministic only
// in distribution.
func (m *Match) autoVoteLocked() {
	realIds := m.realIdsLocked()
	if len(realIds) == 0 {
		return
	}

	for _, agent := range m.participants {
		if agent.IsReal {
			continue
		}

		if rand.Float64() < m.opts.AgentVoteChance {
			m.votes[agent.Id] = realIds[rand.IntN(len(realIds))]
			continue
		}

		candidates := make([]string, 0, len(m.participants)-1)
		for _, p := range m.participants {
			if p.Id != agent.Id {
				candidates = append(candidates, p.Id)
			}
		}
		m.votes[agent.Id] = candidates[rand.IntN(len(candidates))]
	}
}

func (m *Match) voteCountsLocked() map[string]int {
	counts := make(map[string]int)
	for _, targetId := range m.votes {
		counts[targetId]++
	}
	return counts
}

// VoteCounts returns votes received per participant, for the live suspicion
// display and as the wagering most-human signal.
func (m *Match) VoteCounts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.voteCountsLocked()
}

// OutcomeEntry is one row of the post-reveal ranking.
type OutcomeEntry struct {
	PlayerId      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	IsReal        bool   `json:"isHuman"`
	VotesReceived int    `json:"votesReceived"`
}

// Outcome ranks participants by votes received, descending, ties broken
// lexicographically by participant id.
func (m *Match) Outcome() []OutcomeEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomeLocked()
}

func (m *Match) outcomeLocked() []OutcomeEntry {
	counts := m.voteCountsLocked()
	out := make([]OutcomeEntry, 0, len(m.participants))
	for _, p := range m.participants {
		out = append(out, OutcomeEntry{
			PlayerId:      p.Id,
			PlayerName:    p.Name,
			IsReal:        p.IsReal,
			VotesReceived: counts[p.Id],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VotesReceived != out[j].VotesReceived {
			return out[i].VotesReceived > out[j].VotesReceived
		}
		return out[i].PlayerId < out[j].PlayerId
	})
	return out
}

// PlayerView hides the isReal flag; connectivity is always true for agents.
type PlayerView struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	IsConnected bool   `json:"isConnected"`
}

// StateView is the outward projection of a match. Real participant ids and
// the raw vote map only appear from the reveal phase on.
type StateView struct {
	Id            string            `json:"id"`
	Phase         Phase             `json:"phase"`
	Players       []PlayerView      `json:"players"`
	Messages      []Message         `json:"messages"`
	CurrentPrompt string            `json:"currentPrompt,omitempty"`
	VoteCounts    map[string]int    `json:"votes"`
	RawVotes      map[string]string `json:"rawVotes,omitempty"`
	RoastOrder    []string          `json:"roastOrder,omitempty"`
	TimeRemaining int64             `json:"timeRemaining"`
	RealIds       []string          `json:"humanPlayerIds,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// PublicState snapshots the match for the transport layer.
func (m *Match) PublicState() StateView {
	m.mu.Lock()
	defer m.mu.Unlock()

	view := StateView{
		Id:            m.id,
		Phase:         m.phase,
		Players:       make([]PlayerView, 0, len(m.participants)),
		Messages:      append([]Message(nil), m.messages...),
		CurrentPrompt: m.currentPrompt,
		VoteCounts:    m.voteCountsLocked(),
		TimeRemaining: m.remainingLocked().Milliseconds(),
		CreatedAt:     m.createdAt,
	}

	for _, p := range m.participants {
		connected := true
		if p.IsReal {
			connected = p.Connected
		}
		view.Players = append(view.Players, PlayerView{Id: p.Id, Name: p.Name, IsConnected: connected})
	}

	if m.phase == PhaseRound2 {
		view.RoastOrder = append([]string(nil), m.roastOrder...)
	}

	if m.phase == PhaseReveal || m.phase == PhaseEnded {
		view.RealIds = m.realIdsLocked()
		view.RawVotes = make(map[string]string, len(m.votes))
		for voter, target := range m.votes {
			view.RawVotes[voter] = target
		}
	}

	return view
}
