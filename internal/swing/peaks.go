package swing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/fairway-data/swing.report/internal/swing/dsp"
)

// walkoffKeepFraction bounds anchor detection to the first 95% of the
// video. Golfers walking off toward the camera at the end of a recording
// drag the wrist signal into one long fake valley; masking the tail with
// the signal minimum keeps the peak picker out of it.
const walkoffKeepFraction = 0.95

// FindAnchors smooths the combined signal at both scales, negates the
// fine signal so backswing valleys become peaks, and runs prominence and
// distance gated peak picking over it. It returns the anchor indices plus
// both smoothed signals for the downstream refinement and filter stages.
// A non-positive totalVideoFrames disables the walk-off mask.
func FindAnchors(combined []float64, totalVideoFrames int, cfg Config) (anchors []int, fine, coarse []float64, err error) {
	fine, err = dsp.SavGol(combined, cfg.SavgolWindow, cfg.SavgolPoly)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fine smoothing: %w", err)
	}
	coarse, err = dsp.SavGol(combined, cfg.CoarseWindow, cfg.CoarsePoly)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("coarse smoothing: %w", err)
	}

	neg := make([]float64, len(fine))
	floats.ScaleTo(neg, -1, fine)

	if totalVideoFrames > 0 {
		maskStart := int(float64(totalVideoFrames) * walkoffKeepFraction)
		if maskStart < len(neg) {
			floor := floats.Min(neg)
			for i := maskStart; i < len(neg); i++ {
				neg[i] = floor
			}
		}
	}

	anchors = dsp.FindPeaks(neg, cfg.PeakProminence, cfg.PeakDistance)
	return anchors, fine, coarse, nil
}

// BackswingScore rates a candidate frame as a top-of-backswing position.
// Lower is better. The score rewards stillness just before the candidate
// (small frame-to-frame jitter during the pause at the top) and a sharp
// drop just after it (the downswing), so the true top beats both the
// takeaway and mid-downswing frames that share the same valley.
func BackswingScore(peak int, fine []float64, cfg Config) float64 {
	behind := fine[max(0, peak-cfg.LookBehind):peak]
	jitter := 0.0
	if len(behind) > 2 {
		jitter = dsp.PopStdDev(dsp.Diff(behind))
	}

	ahead := fine[peak:min(len(fine), peak+cfg.LookAhead)]
	drop := 0.0
	if len(ahead) > 1 {
		drop = ahead[len(ahead)-1] - ahead[0]
	}

	return jitter - 0.5*drop
}

// SearchAndRefine walks back from each anchor to the true top of the
// backswing. The coarse signal's rising zero crossings within the
// search-back window (plus the anchor itself) form the candidate set; the
// candidate with the best score wins, then a short forward scan over the
// fine signal snaps the winner onto the exact minimum. Earlier frames win
// score and refinement ties.
func SearchAndRefine(anchors []int, fine, coarse []float64, cfg Config) []int {
	refined := make([]int, 0, len(anchors))
	for _, anchor := range anchors {
		searchStart := max(0, anchor-cfg.SearchBack)

		var candidates []int
		d := dsp.Diff(coarse[searchStart : anchor+1])
		for i := 0; i+1 < len(d); i++ {
			if d[i] <= 0 && d[i+1] > 0 {
				candidates = append(candidates, searchStart+i+1)
			}
		}
		candidates = append(candidates, anchor)

		best := candidates[0]
		bestScore := BackswingScore(best, fine, cfg)
		Tracef("anchor %d: candidate %d score %.2f", anchor, best, bestScore)
		for _, c := range candidates[1:] {
			s := BackswingScore(c, fine, cfg)
			Tracef("anchor %d: candidate %d score %.2f", anchor, c, s)
			if s < bestScore {
				best, bestScore = c, s
			}
		}

		refine := fine[best:min(len(fine), best+cfg.RefineWindow+1)]
		refined = append(refined, best+floats.MinIdx(refine))
	}
	return refined
}

// DetectPeaks runs the full frame-finding sequence on a combined wrist
// signal: smooth, pick anchors, refine each to the top of its backswing.
// It returns the refined peak frames along with the fine-smoothed signal
// the filter chain and reports reuse. No anchors means no peaks; the
// smoothed signal still comes back for plotting.
func DetectPeaks(combined []float64, totalVideoFrames int, cfg Config) ([]int, []float64, error) {
	anchors, fine, coarse, err := FindAnchors(combined, totalVideoFrames, cfg)
	if err != nil {
		return nil, nil, err
	}
	if len(anchors) == 0 {
		return nil, fine, nil
	}
	return SearchAndRefine(anchors, fine, coarse, cfg), fine, nil
}
