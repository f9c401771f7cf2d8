package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	obs *Observation
	err error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetObservation sets the observation that will be returned by Detect.
func (m *MockDetector) SetObservation(obs *Observation) {
	m.obs = obs
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured observation or error. With neither
// configured it reports an empty frame with no face.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.obs == nil {
		return &Observation{}, nil
	}
	return m.obs, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// NoFaceObservation returns an observation for a frame with no face.
func NoFaceObservation() *Observation {
	return &Observation{}
}

// NeutralObservation returns an observation of a relaxed face looking at
// the camera: all expression scores well below any plausible threshold.
func NeutralObservation() *Observation {
	return &Observation{
		FaceDetected: true,
		Scores: map[string]float64{
			BlendEyeBlinkLeft:    0.05,
			BlendEyeBlinkRight:   0.07,
			BlendJawOpen:         0.02,
			BlendMouthSmileLeft:  0.10,
			BlendMouthSmileRight: 0.08,
		},
	}
}

// BlinkObservation returns an observation with both eyes firmly closed.
func BlinkObservation() *Observation {
	obs := NeutralObservation()
	obs.Scores[BlendEyeBlinkLeft] = 0.90
	obs.Scores[BlendEyeBlinkRight] = 0.85
	return obs
}

// WinkObservation returns an observation with only the left eye closed.
// A wink must not classify as a blink.
func WinkObservation() *Observation {
	obs := NeutralObservation()
	obs.Scores[BlendEyeBlinkLeft] = 0.90
	return obs
}

// JawOpenObservation returns an observation with the mouth wide open.
func JawOpenObservation() *Observation {
	obs := NeutralObservation()
	obs.Scores[BlendJawOpen] = 0.75
	return obs
}

// SmileObservation returns an observation with a full bilateral smile.
func SmileObservation() *Observation {
	obs := NeutralObservation()
	obs.Scores[BlendMouthSmileLeft] = 0.82
	obs.Scores[BlendMouthSmileRight] = 0.80
	return obs
}
