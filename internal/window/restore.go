package window

// DefaultMaxAttempts bounds how many frames the restorer waits for the target
// card to be laid out.
const DefaultMaxAttempts = 10

// Phase is the restoration state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRestoring
	PhaseLocating
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseRestoring:
		return "restoring"
	case PhaseLocating:
		return "locating"
	case PhaseDone:
		return "done"
	default:
		return "idle"
	}
}

// Outcome says how the last restoration ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeTop
	OutcomeLocated
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTop:
		return "top"
	case OutcomeLocated:
		return "located"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "none"
	}
}

// Restorer brings a target entry back under the header after the view was
// rebuilt from navigation state. While it is active, scroll events are its own
// doing and must not be written back to history.
type Restorer struct {
	MaxAttempts int
	Tracker     Tracker

	phase    Phase
	target   int
	attempts int
	outcome  Outcome
}

func NewRestorer(maxAttempts int, tracker Tracker) *Restorer {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Restorer{MaxAttempts: maxAttempts, Tracker: tracker}
}

// Begin starts restoring target and returns the anchor and window start the
// caller must apply before the next frame. Target 0 completes immediately.
func (r *Restorer) Begin(target, columns int, vp Viewport) (anchorIndex, windowStart int) {
	target = max(target, 0)
	r.target = target
	r.attempts = 0
	r.outcome = OutcomeNone

	if target == 0 {
		vp.ScrollTo(0)
		r.phase = PhaseDone
		r.outcome = OutcomeTop
		return 0, 0
	}

	r.phase = PhaseRestoring
	return target, r.Tracker.WindowStartFor(target, columns)
}

// Frame makes one locate attempt. It returns true when this call finished the
// restoration.
func (r *Restorer) Frame(vp Viewport) bool {
	if !r.Active() {
		return false
	}
	r.phase = PhaseLocating
	r.attempts++

	if top, ok := vp.LocateElement(r.target); ok {
		vp.ScrollTo(max(0, top-vp.HeaderHeight()))
		r.phase = PhaseDone
		r.outcome = OutcomeLocated
		return true
	}

	if r.attempts >= r.maxAttempts() {
		r.phase = PhaseDone
		r.outcome = OutcomeExhausted
		return true
	}
	return false
}

// Active reports whether scroll writes should be suppressed.
func (r *Restorer) Active() bool {
	return r != nil && (r.phase == PhaseRestoring || r.phase == PhaseLocating)
}

// Cancel abandons an in-flight restoration.
func (r *Restorer) Cancel() {
	if r.Active() {
		r.phase = PhaseIdle
	}
}

func (r *Restorer) Phase() Phase {
	if r == nil {
		return PhaseIdle
	}
	return r.phase
}

func (r *Restorer) Target() int      { return r.target }
func (r *Restorer) Attempts() int    { return r.attempts }
func (r *Restorer) Outcome() Outcome { return r.outcome }

func (r *Restorer) maxAttempts() int {
	if r.MaxAttempts < 1 {
		return DefaultMaxAttempts
	}
	return r.MaxAttempts
}
