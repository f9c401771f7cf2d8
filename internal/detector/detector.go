package detector

import "gocv.io/x/gocv"

// Detector defines the interface for face blendshape detection
// implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the face observation for
	// it. The observation is valid even when no face is present; check
	// Observation.FaceDetected.
	Detect(frame *gocv.Mat) (*Observation, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for face detection.
type Config struct {
	// MinConfidence is the minimum face detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum face tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
