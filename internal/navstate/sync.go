package navstate

import "github.com/rs/zerolog"

// Mode selects how a write lands in history.
type Mode int

const (
	// ModePush records a discrete user decision.
	ModePush Mode = iota
	// ModeReplace updates the current entry in place, e.g. a settled scroll.
	ModeReplace
)

func (m Mode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "push"
}

// Syncer writes navigation state to a History, skipping writes that would not
// change the current entry.
type Syncer struct {
	history *History
	last    string
	logger  zerolog.Logger
}

// NewSyncer wraps history. The current entry counts as already written.
func NewSyncer(history *History, logger zerolog.Logger) *Syncer {
	return &Syncer{history: history, last: history.Current(), logger: logger}
}

// Write encodes s and records it according to mode. It reports whether
// history changed.
func (s *Syncer) Write(state State, mode Mode) bool {
	query := Encode(state).String()
	if query == s.last {
		return false
	}
	switch mode {
	case ModeReplace:
		s.history.Replace(query)
	default:
		s.history.Push(query)
	}
	s.last = query
	s.logger.Debug().Str("mode", mode.String()).Str("query", query).Int("entries", s.history.Len()).Msg("history write")
	return true
}

// Observe records an inbound query as the text currently shown, so applying
// it does not write it back as a new entry. The query is canonicalized first.
func (s *Syncer) Observe(query string) State {
	state := Decode(query)
	s.last = Encode(state).String()
	return state
}

// Last is the most recent text written or observed.
func (s *Syncer) Last() string {
	return s.last
}

func (s *Syncer) History() *History {
	return s.history
}
