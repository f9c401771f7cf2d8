package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// SceneGate decides whether a frame is worth running through the face
// landmarker. It compares consecutive frames with blurred grayscale
// differencing; a static scene (nobody in front of the camera, nothing
// moving) lets the pipeline stay at idle frame rates without waking the
// Python subprocess.
type SceneGate struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// Differencing constants.
const (
	// gateBlurSize is the kernel size for Gaussian blur.
	gateBlurSize = 21
	// gateDiffThreshold is the binary threshold for per-pixel change.
	gateDiffThreshold = 25
)

// NewSceneGate creates a SceneGate with the given threshold, the
// percentage of pixels that must change between frames to count as scene
// activity. A threshold of 1.0 means 1% of pixels.
func NewSceneGate(threshold float64) *SceneGate {
	return &SceneGate{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Changed reports whether the frame differs from the previous one beyond
// the configured threshold, along with the percentage of pixels that
// changed. The first frame after construction or Reset establishes the
// baseline and always reports false.
func (g *SceneGate) Changed(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	// Blur to keep sensor noise from registering as activity.
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: gateBlurSize, Y: gateBlurSize}, 0, 0, gocv.BorderDefault)

	if !g.initialized {
		blurred.CopyTo(&g.prevGray)
		g.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, gateDiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&g.prevGray)

	return changePercent > g.threshold, changePercent
}

// Reset clears the baseline so the next frame starts a fresh comparison.
func (g *SceneGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.initialized = false
}

// Close releases resources used by the gate.
func (g *SceneGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.initialized = false
}

// SetThreshold sets the activity threshold.
// Values less than or equal to 0 are ignored.
func (g *SceneGate) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.threshold = threshold
}
