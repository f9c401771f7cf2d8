package detector

import (
	"errors"
	"testing"
)

func TestObservation_Score(t *testing.T) {
	t.Run("returns score for known name", func(t *testing.T) {
		obs := &Observation{
			FaceDetected: true,
			Scores: map[string]float64{
				BlendJawOpen: 0.42,
			},
		}

		if got := obs.Score(BlendJawOpen); got != 0.42 {
			t.Errorf("expected 0.42, got %f", got)
		}
	})

	t.Run("missing name reads as zero", func(t *testing.T) {
		obs := &Observation{
			FaceDetected: true,
			Scores:       map[string]float64{BlendJawOpen: 0.42},
		}

		if got := obs.Score(BlendEyeBlinkLeft); got != 0 {
			t.Errorf("expected 0 for missing score, got %f", got)
		}
	})

	t.Run("nil score map reads as zero", func(t *testing.T) {
		obs := &Observation{FaceDetected: true}

		if got := obs.Score(BlendJawOpen); got != 0 {
			t.Errorf("expected 0 for nil score map, got %f", got)
		}
	})

	t.Run("nil observation reads as zero", func(t *testing.T) {
		var obs *Observation

		if got := obs.Score(BlendJawOpen); got != 0 {
			t.Errorf("expected 0 for nil observation, got %f", got)
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty observation by default", func(t *testing.T) {
		mock := NewMockDetector()

		obs, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if obs == nil {
			t.Fatal("expected non-nil observation")
		}
		if obs.FaceDetected {
			t.Error("expected no face in default observation")
		}
	})

	t.Run("returns configured observation", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetObservation(SmileObservation())

		obs, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !obs.FaceDetected {
			t.Error("expected a detected face")
		}
		if obs.Score(BlendMouthSmileLeft) < 0.5 {
			t.Errorf("expected smiling observation, got %f", obs.Score(BlendMouthSmileLeft))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		obs, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if obs != nil {
			t.Errorf("expected nil observation when error is set, got %v", obs)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		mock := NewMockDetector()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func TestObservationFixtures(t *testing.T) {
	t.Run("no face carries no scores", func(t *testing.T) {
		obs := NoFaceObservation()

		if obs.FaceDetected {
			t.Error("expected no face")
		}
		if obs.Scores != nil {
			t.Errorf("expected nil score map, got %v", obs.Scores)
		}
	})

	t.Run("neutral face stays below thresholds", func(t *testing.T) {
		obs := NeutralObservation()

		if !obs.FaceDetected {
			t.Error("expected a detected face")
		}
		for name, score := range obs.Scores {
			if score > 0.2 {
				t.Errorf("neutral score %s = %f, expected <= 0.2", name, score)
			}
		}
	})

	t.Run("blink closes both eyes", func(t *testing.T) {
		obs := BlinkObservation()

		if obs.Score(BlendEyeBlinkLeft) < 0.7 || obs.Score(BlendEyeBlinkRight) < 0.7 {
			t.Errorf("expected both eyes closed, got left=%f right=%f",
				obs.Score(BlendEyeBlinkLeft), obs.Score(BlendEyeBlinkRight))
		}
	})

	t.Run("wink closes only one eye", func(t *testing.T) {
		obs := WinkObservation()

		if obs.Score(BlendEyeBlinkLeft) < 0.7 {
			t.Errorf("expected left eye closed, got %f", obs.Score(BlendEyeBlinkLeft))
		}
		if obs.Score(BlendEyeBlinkRight) > 0.2 {
			t.Errorf("expected right eye open, got %f", obs.Score(BlendEyeBlinkRight))
		}
	})

	t.Run("smile raises both mouth corners", func(t *testing.T) {
		obs := SmileObservation()

		if obs.Score(BlendMouthSmileLeft) < 0.7 || obs.Score(BlendMouthSmileRight) < 0.7 {
			t.Errorf("expected bilateral smile, got left=%f right=%f",
				obs.Score(BlendMouthSmileLeft), obs.Score(BlendMouthSmileRight))
		}
	})
}
