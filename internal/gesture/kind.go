// Package gesture provides face gesture classification, debouncing, and the
// session state machine that turns per-frame blendshape observations into
// discrete events.
package gesture

// Kind identifies a detectable face gesture.
type Kind int

const (
	// Blink is a bilateral eye closure.
	Blink Kind = iota
	// JawOpen is an open-mouth gesture.
	JawOpen
	// Smile is a bilateral mouth smile.
	Smile

	numKinds
)

// kinds holds all gesture kinds in their fixed evaluation order.
var kinds = [numKinds]Kind{Blink, JawOpen, Smile}

// Kinds returns all gesture kinds in their fixed evaluation order.
func Kinds() []Kind {
	return kinds[:]
}

// ParseKind converts a gesture name back to its Kind.
// Returns false if the name is unknown.
func ParseKind(name string) (Kind, bool) {
	for _, k := range kinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// String returns the canonical name for the gesture kind.
func (k Kind) String() string {
	switch k {
	case Blink:
		return "blink"
	case JawOpen:
		return "jaw_open"
	case Smile:
		return "smile"
	default:
		return "unknown"
	}
}
