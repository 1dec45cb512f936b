package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() (*Registry, *fakeScheduler, *fakeWagering) {
	scheduler := &fakeScheduler{}
	wagering := &fakeWagering{}
	r := NewRegistry(testOptions(), scheduler, &recordPublisher{}, wagering, stubGenerator{err: errGeneratorDown}, testLogger())
	return r, scheduler, wagering
}

func TestRegistry_CreateAndGet(t *testing.T) {
	t.Parallel()
	r, _, wagering := newTestRegistry()

	m := r.CreateMatch("host")
	require.NotNil(t, m)
	assert.Len(t, m.Id(), 8)

	got, ok := r.Get(m.Id())
	require.True(t, ok)
	assert.Same(t, m, got)
	assert.Equal(t, 1, r.ActiveCount())

	wagering.mu.Lock()
	defer wagering.mu.Unlock()
	assert.Equal(t, 1, wagering.initCalls)
}

func TestRegistry_GetUnknown(t *testing.T) {
	t.Parallel()
	r, _, _ := newTestRegistry()

	_, ok := r.Get("nope")
	assert.False(t, ok)
}

func TestRegistry_RemoveShutsDownMatch(t *testing.T) {
	t.Parallel()
	r, _, wagering := newTestRegistry()
	m := r.CreateMatch("host")

	r.Remove(m.Id())

	_, ok := r.Get(m.Id())
	assert.False(t, ok)
	assert.Equal(t, PhaseEnded, m.Phase())

	wagering.mu.Lock()
	cleaned := append([]string(nil), wagering.cleaned...)
	wagering.mu.Unlock()
	assert.Equal(t, []string{m.Id()}, cleaned)

	// Removing twice is harmless.
	r.Remove(m.Id())
}

func TestRegistry_EvictionTimerRemovesMatch(t *testing.T) {
	t.Parallel()
	r, scheduler, _ := newTestRegistry()
	m := r.CreateMatch("host")

	eviction := scheduler.pending(testOptions().CleanupAfter)
	require.Len(t, eviction, 1)
	scheduler.fire(eviction)

	_, ok := r.Get(m.Id())
	assert.False(t, ok)
	assert.Equal(t, 0, r.ActiveCount())
}

func TestRegistry_ListSnapshots(t *testing.T) {
	t.Parallel()
	r, _, _ := newTestRegistry()
	a := r.CreateMatch("alice_host")
	b := r.CreateMatch("bob_host")

	infos := r.List()
	require.Len(t, infos, 2)

	ids := map[string]bool{}
	for _, info := range infos {
		ids[info.Id] = true
		assert.Equal(t, PhaseLobby, info.Phase)
	}
	assert.True(t, ids[a.Id()])
	assert.True(t, ids[b.Id()])
}
