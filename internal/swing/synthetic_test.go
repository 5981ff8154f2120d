package swing

import (
	"math"

	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

// baselineSignal returns a flat signal at the given level.
func baselineSignal(n int, level float64) []float64 {
	sig := make([]float64, n)
	for i := range sig {
		sig[i] = level
	}
	return sig
}

// addDip carves a V-shaped valley of the given depth centred on frame c.
func addDip(sig []float64, c int, depth float64, halfWidth int) {
	for t := c - halfWidth; t <= c+halfWidth; t++ {
		if t < 0 || t >= len(sig) {
			continue
		}
		frac := 1 - math.Abs(float64(t-c))/float64(halfWidth)
		sig[t] -= depth * frac
	}
}

// addRidge raises an inverted-V bump of the given height centred on c.
func addRidge(sig []float64, c int, height float64, halfWidth int) {
	for t := c - halfWidth; t <= c+halfWidth; t++ {
		if t < 0 || t >= len(sig) {
			continue
		}
		frac := 1 - math.Abs(float64(t-c))/float64(halfWidth)
		sig[t] += height * frac
	}
}

// storeFromSignal builds a synthetic keypoint store whose combined wrist
// signal reproduces sig exactly: both wrists track (v/2, v/2) at full
// confidence, and the shoulders share the wrist x so follow-through
// offsets are zero everywhere.
func storeFromSignal(sig []float64) *keypoints.Store {
	frames := make([]keypoints.FrameSample, len(sig))
	for i, v := range sig {
		fs := keypoints.FrameSample{}
		for j := range fs.Scores {
			fs.Scores[j] = 1.0
		}
		half := v / 2
		fs.Joints[keypoints.LeftWrist] = [2]float64{half, half}
		fs.Joints[keypoints.RightWrist] = [2]float64{half, half}
		fs.Joints[keypoints.LeftShoulder] = [2]float64{half, half / 2}
		fs.Joints[keypoints.RightShoulder] = [2]float64{half, half / 2}
		frames[i] = fs
	}
	return keypoints.NewStore(frames, "")
}
