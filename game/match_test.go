package game

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		RosterSize:       4,
		HumanSlots:       2,
		AgentVoteChance:  0.4,
		MinAgentDelay:    2 * time.Second,
		MaxAgentDelay:    10 * time.Second,
		FastForwardGrace: 2 * time.Second,
		CleanupAfter:     30 * time.Minute,
	}.withDefaults()
}

func newTestMatch(opts Options) (*Match, *fakeScheduler, *recordPublisher, *fakeWagering) {
	scheduler := &fakeScheduler{}
	publisher := &recordPublisher{}
	wagering := &fakeWagering{}
	m := newMatch("m1", "host", opts, scheduler, publisher, wagering, stubGenerator{err: errGeneratorDown}, zerolog.Nop())
	return m, scheduler, publisher, wagering
}

func TestMatch_StartsInLobbyWithFullRoster(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestMatch(testOptions())

	assert.Equal(t, PhaseLobby, m.Phase())

	state := m.PublicState()
	assert.Len(t, state.Players, 4)
	require.Len(t, m.RealPlayerIds(), 1)

	// Agent names come from distinct personas.
	seen := make(map[string]bool)
	for _, p := range state.Players {
		assert.False(t, seen[p.Name], "duplicate participant name %s", p.Name)
		seen[p.Name] = true
	}
}

func TestMatch_PhaseWalk(t *testing.T) {
	t.Parallel()
	m, _, _, wagering := newTestMatch(testOptions())

	expected := []Phase{PhaseRound1, PhaseRound2, PhaseRound3, PhaseVoting, PhaseReveal, PhaseEnded}
	for _, want := range expected {
		assert.Equal(t, want, m.AdvancePhase())
	}

	// Ended is terminal.
	assert.Equal(t, PhaseEnded, m.AdvancePhase())

	wagering.mu.Lock()
	defer wagering.mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, wagering.openRounds)
	assert.Equal(t, 1, wagering.closedAll)
	assert.Equal(t, 1, wagering.resolvedAll)
}

func TestMatch_CountdownAdvancesPhase(t *testing.T) {
	t.Parallel()
	opts := testOptions()
	m, scheduler, _, _ := newTestMatch(opts)

	countdowns := scheduler.pending(opts.Durations[PhaseLobby])
	require.Len(t, countdowns, 1)
	scheduler.fire(countdowns)

	assert.Equal(t, PhaseRound1, m.Phase())
}

func TestMatch_StaleTimerDoesNotDoubleAdvance(t *testing.T) {
	t.Parallel()
	opts := testOptions()
	m, scheduler, _, _ := newTestMatch(opts)

	stale := scheduler.pending(opts.Durations[PhaseLobby])
	require.Len(t, stale, 1)

	// The manual advance wins the race; the lobby countdown is now stale.
	require.Equal(t, PhaseRound1, m.AdvancePhase())

	scheduler.fire(stale)
	assert.Equal(t, PhaseRound1, m.Phase())
}

func TestAddHuman_FillsSlotAndKeepsRosterSize(t *testing.T) {
	t.Parallel()
	m, _, _, wagering := newTestMatch(testOptions())

	p, err := m.AddHuman("challenger")
	require.NoError(t, err)
	assert.NotEmpty(t, p.Id)

	state := m.PublicState()
	assert.Len(t, state.Players, 4)
	assert.Len(t, m.RealPlayerIds(), 2)

	// The wagering roster was re-registered with the new participant.
	wagering.mu.Lock()
	defer wagering.mu.Unlock()
	assert.Equal(t, 1, wagering.initCalls)
}

func TestAddHuman_SlotLimit(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestMatch(testOptions())

	_, err := m.AddHuman("second")
	require.NoError(t, err)
	_, err = m.AddHuman("third")
	assert.ErrorIs(t, err, ErrMatchFull)
}

func TestAddHuman_RejectedAfterLobby(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestMatch(testOptions())
	m.AdvancePhase()

	_, err := m.AddHuman("latecomer")
	assert.ErrorIs(t, err, ErrMatchStarted)
}

func TestAddMessage_UnknownParticipant(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestMatch(testOptions())

	_, err := m.AddMessage("ghost", "hello")
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestAddMessage_TagsCurrentPhase(t *testing.T) {
	t.Parallel()
	m, _, publisher, _ := newTestMatch(testOptions())
	m.AdvancePhase()

	hostId := m.RealPlayerIds()[0]
	msg, err := m.AddMessage(hostId, "hot take incoming")
	require.NoError(t, err)
	assert.Equal(t, PhaseRound1, msg.Phase)
	assert.Equal(t, "host", msg.PlayerName)

	require.NotEmpty(t, publisher.ofType(EventMessage))
}

func TestCastVote_OnlyDuringVoting(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestMatch(testOptions())
	hostId := m.RealPlayerIds()[0]

	assert.False(t, m.CastVote(hostId, hostId))
}

func TestCastVote_ReplacesEarlierVote(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestMatch(testOptions())
	advanceTo(t, m, PhaseVoting)

	hostId := m.RealPlayerIds()[0]
	var agentIds []string
	for _, p := range m.PublicState().Players {
		if p.Id != hostId {
			agentIds = append(agentIds, p.Id)
		}
	}

	require.True(t, m.CastVote(hostId, agentIds[0]))
	require.True(t, m.CastVote(hostId, agentIds[1]))

	m.mu.Lock()
	target := m.votes[hostId]
	m.mu.Unlock()
	assert.Equal(t, agentIds[1], target)
}

func TestCastVote_AllVotedFastForwards(t *testing.T) {
	t.Parallel()
	opts := testOptions()
	m, scheduler, _, _ := newTestMatch(opts)
	advanceTo(t, m, PhaseVoting)

	// Agents voted automatically on phase entry; the host's vote completes
	// the roster.
	hostId := m.RealPlayerIds()[0]
	agentId := ""
	for _, p := range m.PublicState().Players {
		if p.Id != hostId {
			agentId = p.Id
			break
		}
	}
	require.True(t, m.CastVote(hostId, agentId))

	grace := scheduler.pending(opts.FastForwardGrace)
	require.Len(t, grace, 1)
	scheduler.fire(grace)

	assert.Equal(t, PhaseReveal, m.Phase())
}

func TestPublicState_HidesIdentityUntilReveal(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestMatch(testOptions())
	advanceTo(t, m, PhaseVoting)

	state := m.PublicState()
	assert.Empty(t, state.RealIds)
	assert.Empty(t, state.RawVotes)

	m.AdvancePhase()
	state = m.PublicState()
	assert.Equal(t, PhaseReveal, state.Phase)
	assert.Equal(t, m.RealPlayerIds(), state.RealIds)
	assert.NotEmpty(t, state.RawVotes)
}

func TestPublicState_RoastOrderOnlyInRound2(t *testing.T) {
	t.Parallel()
	m, _, _, _ := newTestMatch(testOptions())
	advanceTo(t, m, PhaseRound2)

	state := m.PublicState()
	assert.Len(t, state.RoastOrder, 4)

	m.AdvancePhase()
	assert.Empty(t, m.PublicState().RoastOrder)
}

func TestReveal_PublishesOutcome(t *testing.T) {
	t.Parallel()
	m, _, publisher, _ := newTestMatch(testOptions())
	advanceTo(t, m, PhaseReveal)

	reveals := publisher.ofType(EventReveal)
	require.Len(t, reveals, 1)
	payload, ok := reveals[0].Payload.(*RevealPayload)
	require.True(t, ok)
	assert.Equal(t, m.RealPlayerIds(), payload.RealIds)
	assert.Len(t, payload.Results, 4)
}

func advanceTo(t *testing.T, m *Match, target Phase) {
	t.Helper()
	for i := 0; i < len(nextPhase)+1; i++ {
		if m.Phase() == target {
			return
		}
		m.AdvancePhase()
	}
	require.Equal(t, target, m.Phase())
}
