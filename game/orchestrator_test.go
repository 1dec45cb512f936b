package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agentResponseCalls(m *Match, scheduler *fakeScheduler) []*scheduledCall {
	var out []*scheduledCall
	for _, c := range scheduler.pending(0) {
		if c.delay >= m.opts.MinAgentDelay && c.delay < m.opts.MaxAgentDelay {
			out = append(out, c)
		}
	}
	return out
}

func TestAgentResponses_ScheduledPerAgentOnChatPhase(t *testing.T) {
	t.Parallel()
	m, scheduler, _, _ := newTestMatch(testOptions())
	m.AdvancePhase()

	// One response timer per agent, each inside the delay window.
	assert.Len(t, agentResponseCalls(m, scheduler), 3)
}

func TestAgentResponses_FallbackOnGeneratorFailure(t *testing.T) {
	t.Parallel()
	m, scheduler, _, _ := newTestMatch(testOptions())
	m.AdvancePhase()

	scheduler.fire(agentResponseCalls(m, scheduler))

	state := m.PublicState()
	require.Len(t, state.Messages, 3)

	byName := make(map[string]Persona)
	for _, p := range Personas {
		byName[p.Name] = p
	}
	for _, msg := range state.Messages {
		persona, ok := byName[msg.PlayerName]
		require.True(t, ok, "message from non-agent %s", msg.PlayerName)
		assert.Equal(t, persona.Fallback(PhaseRound1), msg.Text)
		assert.Equal(t, PhaseRound1, msg.Phase)
	}
}

func TestAgentResponses_UseGeneratedText(t *testing.T) {
	t.Parallel()
	scheduler := &fakeScheduler{}
	m := newMatch("m1", "host", testOptions(), scheduler, &recordPublisher{}, &fakeWagering{}, stubGenerator{text: "spicy take"}, testLogger())
	m.AdvancePhase()

	scheduler.fire(agentResponseCalls(m, scheduler))

	state := m.PublicState()
	require.Len(t, state.Messages, 3)
	for _, msg := range state.Messages {
		assert.Equal(t, "spicy take", msg.Text)
	}
}

func TestAgentResponses_StaleGenerationDropped(t *testing.T) {
	t.Parallel()
	m, scheduler, _, _ := newTestMatch(testOptions())
	m.AdvancePhase()

	stale := agentResponseCalls(m, scheduler)
	require.Len(t, stale, 3)

	// The phase moves on before the delays elapse.
	m.AdvancePhase()
	fresh := agentResponseCalls(m, scheduler)

	scheduler.fire(stale)

	state := m.PublicState()
	for _, msg := range state.Messages {
		assert.NotEqual(t, PhaseRound1, msg.Phase, "stale round 1 response landed")
	}

	// The round 2 batch still works.
	scheduler.fire(fresh)
	require.NotEmpty(t, m.PublicState().Messages)
}

// phaseShiftGenerator advances the match while its call is in flight, the way
// a countdown expiry can race a slow external call.
type phaseShiftGenerator struct {
	m *Match
}

func (g *phaseShiftGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	g.m.AdvancePhase()
	return "late reply", nil
}

func TestAgentResponses_PhaseShiftDuringGenerationDropped(t *testing.T) {
	t.Parallel()
	scheduler := &fakeScheduler{}
	gen := &phaseShiftGenerator{}
	m := newMatch("m1", "host", testOptions(), scheduler, &recordPublisher{}, &fakeWagering{}, gen, testLogger())
	gen.m = m
	m.AdvancePhase()

	calls := agentResponseCalls(m, scheduler)
	require.Len(t, calls, 3)
	scheduler.fire(calls[:1])

	// The response was produced for a generation that ended mid-call, so it
	// never lands, under the old phase or the new one.
	assert.Empty(t, m.PublicState().Messages)
}

func TestRoastReplies_TargetLatestRoundMessage(t *testing.T) {
	t.Parallel()
	captured := &captureGenerator{}
	scheduler := &fakeScheduler{}
	m := newMatch("m1", "host", testOptions(), scheduler, &recordPublisher{}, &fakeWagering{}, captured, testLogger())

	advanceTo(t, m, PhaseRound2)
	hostId := m.RealPlayerIds()[0]
	_, err := m.AddMessage(hostId, "you all talk like chatbots")
	require.NoError(t, err)

	scheduler.fire(agentResponseCalls(m, scheduler))

	reqs := captured.requests()
	require.NotEmpty(t, reqs)

	// The first responder roasts the host's line; later responders pile on
	// whatever landed last.
	first := true
	for _, req := range reqs {
		if req.Phase != PhaseRound2 {
			continue
		}
		assert.NotEmpty(t, req.ReplyTo)
		if first {
			assert.Equal(t, "you all talk like chatbots", req.ReplyTo)
			first = false
		}
	}
	assert.False(t, first, "no round 2 generation request seen")
}
