package swing

import (
	"sort"

	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

// WristSignal carries the six per-frame channels the detector consumes:
// left/right wrist x, left/right wrist y, and left/right wrist confidence.
// All six slices have identical length.
type WristSignal struct {
	XL, XR []float64
	YL, YR []float64
	CL, CR []float64
}

// Len returns the number of frames in the signal.
func (ws WristSignal) Len() int { return len(ws.XL) }

// ExtractWristSignal pulls the wrist channels out of a dense keypoint
// store at the configured joint indices.
func ExtractWristSignal(store *keypoints.Store, cfg Config) WristSignal {
	n := store.Len()
	ws := WristSignal{
		XL: make([]float64, n), XR: make([]float64, n),
		YL: make([]float64, n), YR: make([]float64, n),
		CL: make([]float64, n), CR: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		ws.XL[i], ws.YL[i] = store.Joint(i, cfg.LeftWrist)
		ws.XR[i], ws.YR[i] = store.Joint(i, cfg.RightWrist)
		ws.CL[i] = store.Score(i, cfg.LeftWrist)
		ws.CR[i] = store.Score(i, cfg.RightWrist)
	}
	return ws
}

// InterpolateLowConfidence replaces samples whose confidence is below
// threshold with a piecewise-linear interpolation over all good samples
// (confidence >= threshold), holding the first/last good value constant
// beyond the ends. The input is never modified. When every sample is good,
// or when fewer than two good samples exist, the copy is returned
// unchanged since no interpolation is possible. Idempotent for a fixed
// threshold.
func InterpolateLowConfidence(signal, conf []float64, threshold float64) []float64 {
	out := append([]float64(nil), signal...)

	good := make([]int, 0, len(conf))
	for i, c := range conf {
		if c >= threshold {
			good = append(good, i)
		}
	}
	if len(good) == len(signal) || len(good) < 2 {
		return out
	}

	for i := range out {
		if conf[i] < threshold {
			out[i] = interpAt(i, good, signal)
		}
	}
	return out
}

// interpAt evaluates the piecewise-linear fit through the good sample
// positions at index i. Callers only pass indices outside good, so i
// always falls strictly between two anchors or beyond the ends.
func interpAt(i int, good []int, signal []float64) float64 {
	j := sort.SearchInts(good, i)
	if j == 0 {
		return signal[good[0]]
	}
	if j == len(good) {
		return signal[good[len(good)-1]]
	}
	lo, hi := good[j-1], good[j]
	t := float64(i-lo) / float64(hi-lo)
	return signal[lo] + t*(signal[hi]-signal[lo])
}

// BuildCombined interpolates the four coordinate channels independently
// and fuses them into the combined arc signal (xL+xR)/2 + (yL+yR)/2.
// At the top of a backswing both terms are low (hands high and behind the
// body); at contact both are high (hands extended forward), so the one
// scalar carries both events.
func BuildCombined(ws WristSignal, confThreshold float64) []float64 {
	xl := InterpolateLowConfidence(ws.XL, ws.CL, confThreshold)
	xr := InterpolateLowConfidence(ws.XR, ws.CR, confThreshold)
	yl := InterpolateLowConfidence(ws.YL, ws.CL, confThreshold)
	yr := InterpolateLowConfidence(ws.YR, ws.CR, confThreshold)

	combined := make([]float64, len(xl))
	for i := range combined {
		combined[i] = (xl[i]+xr[i])/2 + (yl[i]+yr[i])/2
	}
	return combined
}
