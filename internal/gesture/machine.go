package gesture

import (
	"time"

	"github.com/ayusman/abhinaya/internal/detector"
)

// Machine is the per-session gesture state machine. It tracks face
// presence, face positioning, and one active flag per gesture kind, feeds
// each frame through the classifier, and emits events on state
// transitions.
//
// A Machine is owned by exactly one processing goroutine. ProcessFrame
// performs unlocked read-modify-write on session state, so calls must be
// serialized and frames delivered in capture order.
type Machine struct {
	cfg      Config
	listener Listener

	classifier *Classifier
	debouncer  *Debouncer

	faceDetected   bool
	faceInPosition bool
	active         [numKinds]bool
}

func newMachine(cfg Config, listener Listener) *Machine {
	return &Machine{
		cfg:        cfg,
		listener:   listener,
		classifier: NewClassifier(cfg),
		debouncer:  NewDebouncer(cfg.Cooldown),
	}
}

// Config returns the immutable session settings.
func (m *Machine) Config() Config {
	return m.cfg
}

// ProcessFrame runs one observation through the state machine. Events are
// dispatched to the listener synchronously in the order generated, and the
// same ordered sequence is returned. The returned slice is nil when the
// frame produced no transitions.
func (m *Machine) ProcessFrame(obs *detector.Observation, now time.Time) []Event {
	var events []Event

	detected := obs != nil && obs.FaceDetected
	if detected != m.faceDetected {
		m.faceDetected = detected
		events = append(events, Event{Type: EventFaceDetected, Active: detected})
	}

	if !detected {
		// No stale gesture state may survive face loss: force position
		// and every active kind off in the same step, then stop.
		if m.faceInPosition {
			m.faceInPosition = false
			events = append(events, Event{Type: EventFaceInPosition})
		}
		for _, k := range kinds {
			if m.active[k] {
				m.active[k] = false
				events = append(events, Event{Type: EventGestureStateChanged, Kind: k})
			}
		}
		m.dispatch(events)
		return events
	}

	if !m.faceInPosition {
		// Positioning mirrors presence; the landmarker reports no framing
		// geometry beyond "a face exists".
		m.faceInPosition = true
		events = append(events, Event{Type: EventFaceInPosition, Active: true})
	}

	for _, k := range kinds {
		active := m.classifier.Active(k, obs)
		if active == m.active[k] {
			continue
		}
		m.active[k] = active
		events = append(events, Event{Type: EventGestureStateChanged, Kind: k, Active: active})

		// Rising edge: the discrete firing is cooldown-gated, the state
		// change above never is.
		if active && m.debouncer.ShouldFire(k, now) {
			events = append(events, Event{Type: EventGestureDetected, Kind: k})
		}
	}

	m.dispatch(events)
	return events
}

// ReportError forwards a capture or inference failure to the listener
// unchanged. The failed frame is not classified; session state is
// untouched.
func (m *Machine) ReportError(message string, code int) {
	m.listener.OnError(message, code)
}

// Reset returns the machine to its initial all-inactive state and clears
// the debounce history. No events are emitted.
func (m *Machine) Reset() {
	m.faceDetected = false
	m.faceInPosition = false
	m.active = [numKinds]bool{}
	m.debouncer.Reset()
}

func (m *Machine) dispatch(events []Event) {
	for _, e := range events {
		switch e.Type {
		case EventFaceDetected:
			m.listener.OnFaceDetected(e.Active)
		case EventFaceInPosition:
			m.listener.OnFaceInPosition(e.Active)
		case EventGestureStateChanged:
			m.listener.OnGestureStateChanged(e.Kind, e.Active)
		case EventGestureDetected:
			m.listener.OnGestureDetected(e.Kind)
		}
	}
}
