package gesture

import "github.com/ayusman/abhinaya/internal/detector"

// Classifier maps a frame's blendshape scores to per-kind boolean
// predicates using the session thresholds. It is stateless: identical
// inputs always produce identical outputs.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a Classifier for the given settings.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Active reports whether the gesture kind is active in the observation.
// Comparisons are strict: a score exactly equal to the threshold does not
// count. A missing score reads as 0. If the observation carries no face,
// every kind is inactive.
func (c *Classifier) Active(kind Kind, obs *detector.Observation) bool {
	if obs == nil || !obs.FaceDetected {
		return false
	}

	t := c.cfg.threshold(kind)
	switch kind {
	case Blink:
		// Bilateral: both eyes must close together, a wink is not a blink.
		return obs.Score(detector.BlendEyeBlinkLeft) > t &&
			obs.Score(detector.BlendEyeBlinkRight) > t
	case JawOpen:
		return obs.Score(detector.BlendJawOpen) > t
	case Smile:
		return obs.Score(detector.BlendMouthSmileLeft) > t &&
			obs.Score(detector.BlendMouthSmileRight) > t
	default:
		return false
	}
}
