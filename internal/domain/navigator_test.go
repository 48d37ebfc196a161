package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator(t *testing.T, size int) *Navigator {
	t.Helper()

	entries := make([]VocabularyEntry, size)
	for i := range entries {
		entry, err := NewVocabularyEntry("word", "translation")
		require.NoError(t, err)
		entries[i] = entry
	}

	session, err := NewSession(1, "test", entries)
	require.NoError(t, err)

	nav, err := NewNavigator(session)
	require.NoError(t, err)
	return nav
}

func TestNavigator_SampleDeckWrapsAround(t *testing.T) {
	session, err := NewSession(1, "Greetings", SampleEntries())
	require.NoError(t, err)

	nav, err := NewNavigator(session)
	require.NoError(t, err)
	assert.Equal(t, NavigationState{CurrentIndex: 0, IsFlipped: false}, nav.State())

	nav.Advance()
	nav.Advance()
	assert.Equal(t, 2, nav.State().CurrentIndex)
	assert.Equal(t, "Thank you", nav.Current().Word)

	nav.Advance()
	assert.Equal(t, 0, nav.State().CurrentIndex)
	assert.Equal(t, "Hello", nav.Current().Word)
}

func TestNavigator_RetreatWrapsToLast(t *testing.T) {
	nav := newTestNavigator(t, 3)

	assert.True(t, nav.Retreat())
	assert.Equal(t, 2, nav.State().CurrentIndex)
}

func TestNavigator_IndexStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for size := 1; size <= 7; size++ {
		nav := newTestNavigator(t, size)
		for step := 0; step < 200; step++ {
			if rng.Intn(2) == 0 {
				nav.Advance()
			} else {
				nav.Retreat()
			}
			idx := nav.State().CurrentIndex
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, size)
		}
	}
}

func TestNavigator_AdvanceRetreatRoundTrip(t *testing.T) {
	for size := 2; size <= 5; size++ {
		for start := 0; start < size; start++ {
			nav := newTestNavigator(t, size)
			for i := 0; i < start; i++ {
				nav.Advance()
			}

			nav.Advance()
			nav.Retreat()
			assert.Equal(t, start, nav.State().CurrentIndex, "advance then retreat, size %d", size)

			nav.Retreat()
			nav.Advance()
			assert.Equal(t, start, nav.State().CurrentIndex, "retreat then advance, size %d", size)
		}
	}
}

func TestNavigator_MovingResetsFlip(t *testing.T) {
	tests := []struct {
		name string
		move func(*Navigator) bool
	}{
		{name: "advance", move: (*Navigator).Advance},
		{name: "retreat", move: (*Navigator).Retreat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := newTestNavigator(t, 3)

			nav.Flip()
			require.True(t, nav.State().IsFlipped)
			assert.True(t, tt.move(nav))
			assert.False(t, nav.State().IsFlipped)

			assert.True(t, tt.move(nav))
			assert.False(t, nav.State().IsFlipped)
		})
	}
}

func TestNavigator_FlipKeepsIndex(t *testing.T) {
	nav := newTestNavigator(t, 3)
	nav.Advance()

	nav.Flip()
	assert.Equal(t, NavigationState{CurrentIndex: 1, IsFlipped: true}, nav.State())

	nav.Flip()
	assert.Equal(t, NavigationState{CurrentIndex: 1, IsFlipped: false}, nav.State())
}

func TestNavigator_SingleCardDisablesNavigation(t *testing.T) {
	nav := newTestNavigator(t, 1)

	assert.False(t, nav.CanNavigate())
	nav.Flip()
	assert.False(t, nav.Advance())
	assert.False(t, nav.Retreat())
	// a disabled move leaves the flip state alone too
	assert.Equal(t, NavigationState{CurrentIndex: 0, IsFlipped: true}, nav.State())

	for i := 0; i < 5; i++ {
		nav.Flip()
		assert.Equal(t, 0, nav.State().CurrentIndex)
	}
}

func TestNavigator_SetRememberedOnlyTouchesCurrent(t *testing.T) {
	nav := newTestNavigator(t, 3)
	nav.Advance()
	before := nav.State()

	require.NoError(t, nav.SetRemembered(true))
	require.NoError(t, nav.SetRemembered(true))

	entries := nav.Session().Entries
	assert.False(t, entries[0].Remembered)
	assert.True(t, entries[1].Remembered)
	assert.False(t, entries[2].Remembered)
	assert.Equal(t, 1, nav.Session().RememberedCount())
	assert.Equal(t, before, nav.State())
}

func TestNavigator_AnnotationOnShrunkSession(t *testing.T) {
	nav := newTestNavigator(t, 3)
	nav.Advance()
	nav.Advance()

	nav.Session().Entries = nav.Session().Entries[:1]

	assert.ErrorIs(t, nav.SetRemembered(true), ErrIndexOutOfRange)
	assert.ErrorIs(t, nav.SetDifficulty(DifficultyHard), ErrIndexOutOfRange)
	assert.Equal(t, VocabularyEntry{}, nav.Current())
	assert.False(t, nav.Session().Entries[0].Remembered)
}

func TestNavigator_SetDifficultyKeepsRemembered(t *testing.T) {
	nav := newTestNavigator(t, 2)
	require.NoError(t, nav.SetRemembered(true))

	require.NoError(t, nav.SetDifficulty(DifficultyHard))

	assert.True(t, nav.Current().Remembered)
	assert.Equal(t, DifficultyHard, nav.Current().Difficulty)
	assert.Error(t, nav.SetDifficulty(Difficulty("impossible")))
	assert.Equal(t, DifficultyHard, nav.Current().Difficulty)
}

func TestNavigator_AnnotationScenario(t *testing.T) {
	session, err := NewSession(1, "Greetings", SampleEntries())
	require.NoError(t, err)
	nav, err := NewNavigator(session)
	require.NoError(t, err)

	require.NoError(t, nav.SetRemembered(true))
	nav.Advance()
	require.NoError(t, nav.SetDifficulty(DifficultyHard))

	view := nav.Snapshot()
	assert.Equal(t, 1, view.Remembered)
	assert.False(t, session.Entries[1].Remembered)
	assert.Equal(t, DifficultyHard, session.Entries[1].Difficulty)
}

func TestNavigator_ReplaceResetsState(t *testing.T) {
	nav := newTestNavigator(t, 3)
	nav.Advance()
	nav.Flip()

	next, err := NewSession(1, "Food", SampleEntries()[:2])
	require.NoError(t, err)
	require.NoError(t, nav.Replace(next))

	assert.Equal(t, NavigationState{}, nav.State())
	assert.Equal(t, "Food", nav.Session().Topic)
}

func TestNavigator_RejectsMissingSession(t *testing.T) {
	_, err := NewNavigator(nil)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = NewNavigator(&Session{Topic: "empty"})
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestCardView_Progress(t *testing.T) {
	nav := newTestNavigator(t, 4)
	nav.Advance()

	view := nav.Snapshot()
	assert.Equal(t, 2, view.Position())
	assert.Equal(t, 4, view.Total)
	assert.InDelta(t, 0.5, view.Progress(), 1e-9)
	assert.InDelta(t, nav.Progress(), view.Progress(), 1e-9)
	assert.True(t, view.CanNavigate)

	assert.Equal(t, 0.0, CardView{}.Progress())
}
