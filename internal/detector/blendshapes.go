// Package detector provides face detection interfaces and types for gesture
// recognition.
package detector

// Blendshape category names following the MediaPipe face landmarker
// convention. Only the categories the classifier consumes are named here;
// observations may carry the full set.
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
const (
	BlendEyeBlinkLeft    = "eyeBlinkLeft"
	BlendEyeBlinkRight   = "eyeBlinkRight"
	BlendJawOpen         = "jawOpen"
	BlendMouthSmileLeft  = "mouthSmileLeft"
	BlendMouthSmileRight = "mouthSmileRight"
)

// Observation is one frame's worth of face tracking output: a flag for
// whether any face was seen plus the named blendshape confidence scores
// for it. Observations are ephemeral; they are built per frame and never
// retained across frames.
type Observation struct {
	FaceDetected bool               `json:"face_detected"`
	Scores       map[string]float64 `json:"scores,omitempty"`
	TimestampMs  int64              `json:"timestamp_ms"`
}

// Score returns the confidence for a named blendshape category. Unknown
// names and a nil score map read as 0.
func (o *Observation) Score(name string) float64 {
	if o == nil || o.Scores == nil {
		return 0
	}
	return o.Scores[name]
}
