package gesture

// EventType identifies the kind of event emitted by the Machine.
type EventType string

const (
	// EventFaceDetected signals a change in face presence.
	EventFaceDetected EventType = "face_detected"
	// EventFaceInPosition signals a change in face positioning.
	EventFaceInPosition EventType = "face_in_position"
	// EventGestureStateChanged signals a gesture edge, fired on every
	// transition and never debounced.
	EventGestureStateChanged EventType = "gesture_state_changed"
	// EventGestureDetected is the discrete, cooldown-gated firing on a
	// rising edge.
	EventGestureDetected EventType = "gesture_detected"
	// EventError is a verbatim passthrough from the frame-acquisition or
	// inference side.
	EventError EventType = "error"
)

// Event is one emitted detection event. Only the fields relevant to the
// event type are populated: Kind for gesture events, Active for presence,
// position, and state-change events, Message/Code for errors.
type Event struct {
	Type    EventType
	Kind    Kind
	Active  bool
	Message string
	Code    int
}

// Listener receives events emitted by the Machine. Dispatch is synchronous
// on the frame-processing goroutine, so implementations must return
// quickly.
type Listener interface {
	// OnFaceDetected is called when face presence changes.
	OnFaceDetected(detected bool)

	// OnFaceInPosition is called when face positioning changes.
	OnFaceInPosition(inPosition bool)

	// OnGestureStateChanged is called on every gesture activation edge.
	OnGestureStateChanged(kind Kind, active bool)

	// OnGestureDetected is called on a rising edge that passed the
	// cooldown, at most once per cooldown window per kind.
	OnGestureDetected(kind Kind)

	// OnError is called with failures reported by the capture or
	// inference side. The frame that produced the error contributes no
	// other events.
	OnError(message string, code int)
}
