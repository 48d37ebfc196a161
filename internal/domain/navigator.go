package domain

// NavigationState is the transient view state over a deck
type NavigationState struct {
	CurrentIndex int
	IsFlipped    bool
}

// Navigator moves over a Session's entries and writes annotations through to it.
// A Navigator always has a non-empty session, so CurrentIndex is always valid.
type Navigator struct {
	session *Session
	state   NavigationState
}

// NewNavigator creates a navigator positioned on the first card, front side up
func NewNavigator(session *Session) (*Navigator, error) {
	n := &Navigator{}
	if err := n.Replace(session); err != nil {
		return nil, err
	}
	return n, nil
}

// Replace swaps in a new deck and resets the view state
func (n *Navigator) Replace(session *Session) error {
	if session == nil {
		return ErrNoSession
	}
	if session.Len() == 0 {
		return ErrEmptyDeck
	}
	n.session = session
	n.state = NavigationState{CurrentIndex: 0, IsFlipped: false}
	return nil
}

// Session returns the deck being navigated
func (n *Navigator) Session() *Session {
	return n.session
}

// State returns a copy of the view state
func (n *Navigator) State() NavigationState {
	return n.state
}

// CanNavigate reports whether next/previous are enabled
func (n *Navigator) CanNavigate() bool {
	return n.session.Len() > 1
}

// Advance moves to the next card, wrapping after the last one.
// Returns false without touching the state when navigation is disabled.
func (n *Navigator) Advance() bool {
	if !n.CanNavigate() {
		return false
	}
	n.state.CurrentIndex = (n.state.CurrentIndex + 1) % n.session.Len()
	n.state.IsFlipped = false
	return true
}

// Retreat moves to the previous card, wrapping before the first one.
// Returns false without touching the state when navigation is disabled.
func (n *Navigator) Retreat() bool {
	if !n.CanNavigate() {
		return false
	}
	size := n.session.Len()
	n.state.CurrentIndex = (n.state.CurrentIndex - 1 + size) % size
	n.state.IsFlipped = false
	return true
}

// Flip turns the current card over
func (n *Navigator) Flip() {
	n.state.IsFlipped = !n.state.IsFlipped
}

// SetRemembered marks the current card
func (n *Navigator) SetRemembered(flag bool) error {
	return n.session.SetRemembered(n.state.CurrentIndex, flag)
}

// SetDifficulty rates the current card
func (n *Navigator) SetDifficulty(level Difficulty) error {
	return n.session.SetDifficulty(n.state.CurrentIndex, level)
}

// Current returns the card under the cursor, or a zero entry if the
// session was shrunk underneath the navigator
func (n *Navigator) Current() VocabularyEntry {
	entry, err := n.session.Entry(n.state.CurrentIndex)
	if err != nil {
		return VocabularyEntry{}
	}
	return entry
}

// Progress returns the fraction of the deck reached, (index+1)/N
func (n *Navigator) Progress() float64 {
	return float64(n.state.CurrentIndex+1) / float64(n.session.Len())
}

// Snapshot captures everything the render layer needs
func (n *Navigator) Snapshot() CardView {
	return CardView{
		Topic:       n.session.Topic,
		Entry:       n.Current(),
		Index:       n.state.CurrentIndex,
		Total:       n.session.Len(),
		Flipped:     n.state.IsFlipped,
		Remembered:  n.session.RememberedCount(),
		CanNavigate: n.CanNavigate(),
	}
}

// CardView is a read-only copy of the navigator handed to the renderer
type CardView struct {
	Topic       string
	Entry       VocabularyEntry
	Index       int
	Total       int
	Flipped     bool
	Remembered  int
	CanNavigate bool
}

// Position returns the 1-based card number
func (v CardView) Position() int {
	return v.Index + 1
}

// Progress returns (index+1)/N
func (v CardView) Progress() float64 {
	if v.Total == 0 {
		return 0
	}
	return float64(v.Index+1) / float64(v.Total)
}
