package swing

import (
	"fmt"
	"math"
	"sort"

	"github.com/fairway-data/swing.report/internal/swing/dsp"
	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

// FilterContext carries everything a post-detection filter may consult:
// the fine-smoothed signal the peaks index into, the video frame count,
// the raw keypoint store, and the active configuration.
type FilterContext struct {
	Smoothed    []float64
	TotalFrames int
	Frames      *keypoints.Store
	Config      Config
}

// FilterFunc removes peaks it judges spurious and describes what it
// removed, one line per action, for the detection log.
type FilterFunc func(peaks []int, ctx *FilterContext) ([]int, []string)

type filterStage struct {
	name        string
	apply       FilterFunc
	haltOnEmpty bool
}

// The chain order matters: dedup and end-of-video trimming run first and
// may empty the set outright, the statistical filters after them need the
// cleaned survivors to compute a meaningful median.
var filterChain = []filterStage{
	{"dedup", dedupFilter, true},
	{"end-of-video", trimEndFilter, true},
	{"merge-close", mergeCloseFilter, false},
	{"mad-outlier", madOutlierFilter, false},
	{"follow-through", followThroughFilter, false},
}

// RunFilters passes the detected peaks through the post-processing chain
// and collects the removal log. Peaks come back sorted and unique.
func RunFilters(peaks []int, ctx *FilterContext) ([]int, []string) {
	var logLines []string
	for _, stage := range filterChain {
		var lines []string
		peaks, lines = stage.apply(peaks, ctx)
		for _, line := range lines {
			Diagf("%s", line)
		}
		logLines = append(logLines, lines...)
		if stage.haltOnEmpty && len(peaks) == 0 {
			break
		}
	}
	return peaks, logLines
}

// dedupFilter drops exact duplicate frames and sorts what remains.
func dedupFilter(peaks []int, _ *FilterContext) ([]int, []string) {
	seen := make(map[int]bool, len(peaks))
	unique := make([]int, 0, len(peaks))
	for _, p := range peaks {
		if !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}
	sort.Ints(unique)

	removed := len(peaks) - len(unique)
	if removed > 0 {
		return unique, []string{fmt.Sprintf("Dedup: removed %d duplicate(s)", removed)}
	}
	return unique, nil
}

// trimEndFilter drops peaks inside the final slice of the video, where a
// golfer bending down to collect balls reads exactly like a backswing.
func trimEndFilter(peaks []int, ctx *FilterContext) ([]int, []string) {
	cutoff := int(float64(ctx.TotalFrames) * (1.0 - ctx.Config.EndOfVideoPct))
	kept := make([]int, 0, len(peaks))
	for _, p := range peaks {
		if p < cutoff {
			kept = append(kept, p)
		}
	}
	if removed := len(peaks) - len(kept); removed > 0 {
		return kept, []string{fmt.Sprintf("End-of-video: removed %d peak(s) past frame %d", removed, cutoff)}
	}
	return kept, nil
}

// mergeCloseFilter collapses peaks closer together than a real swing
// cycle allows, keeping whichever sits lower on the smoothed signal
// (the deeper valley is the real top). The earlier peak wins ties.
func mergeCloseFilter(peaks []int, ctx *FilterContext) ([]int, []string) {
	if len(peaks) == 0 {
		return peaks, nil
	}
	merged := []int{peaks[0]}
	removed := 0
	for _, p := range peaks[1:] {
		prev := merged[len(merged)-1]
		if p-prev < ctx.Config.MinSwingGap {
			if ctx.Smoothed[p] < ctx.Smoothed[prev] {
				merged[len(merged)-1] = p
			}
			removed++
			continue
		}
		merged = append(merged, p)
	}
	if removed > 0 {
		return merged, []string{fmt.Sprintf("Too-close: removed %d peak(s) within %d frames", removed, ctx.Config.MinSwingGap)}
	}
	return merged, nil
}

// madOutlierFilter removes peaks whose combined signal value sits far
// above the per-video median. A golfer reaching down for a ball leaves
// the wrists low in the frame (high signal value), unlike any real top
// of backswing. Needs enough peaks for a stable median.
func madOutlierFilter(peaks []int, ctx *FilterContext) ([]int, []string) {
	if len(peaks) < ctx.Config.XYOutlierMinPeaks {
		return peaks, nil
	}
	vals := make([]float64, len(peaks))
	for i, p := range peaks {
		vals[i] = ctx.Smoothed[p]
	}
	med := dsp.Median(vals)
	mad := math.Max(dsp.MAD(vals), ctx.Config.XYOutlierMADFloor)
	if mad <= 0 {
		return peaks, nil
	}
	thresh := med + ctx.Config.XYOutlierMADThresh*mad

	kept := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if vals[i] <= thresh {
			kept = append(kept, p)
		}
	}
	if removed := len(peaks) - len(kept); removed > 0 {
		return kept, []string{fmt.Sprintf("MAD: removed %d peak(s) with x+y > %.0f (med=%.0f, MAD=%.0f)", removed, thresh, med, mad)}
	}
	return kept, nil
}

// followThroughFilter removes peaks where the wrists sit well forward of
// the shoulders. At the top of a real backswing the hands stay behind or
// over the body line; a big positive wrist-minus-shoulder x offset means
// the detector latched onto a follow-through pose instead. Skipped when
// no keypoint store is attached or the peak set is too small for a
// median.
func followThroughFilter(peaks []int, ctx *FilterContext) ([]int, []string) {
	if ctx.Frames == nil || len(peaks) < ctx.Config.XYOutlierMinPeaks {
		return peaks, nil
	}
	offsets := make([]float64, len(peaks))
	for i, p := range peaks {
		lwx, _ := ctx.Frames.Joint(p, ctx.Config.LeftWrist)
		rwx, _ := ctx.Frames.Joint(p, ctx.Config.RightWrist)
		lsx, _ := ctx.Frames.Joint(p, ctx.Config.LeftShoulder)
		rsx, _ := ctx.Frames.Joint(p, ctx.Config.RightShoulder)
		offsets[i] = (lwx+rwx)/2 - (lsx+rsx)/2
	}
	med := dsp.Median(offsets)
	mad := math.Max(dsp.MAD(offsets), ctx.Config.XOffMADFloor)
	thresh := med + ctx.Config.XOffMADThresh*mad

	kept := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if offsets[i] <= thresh {
			kept = append(kept, p)
		}
	}
	if removed := len(peaks) - len(kept); removed > 0 {
		return kept, []string{fmt.Sprintf("Follow-through: removed %d peak(s) with x_offset > %.0f", removed, thresh)}
	}
	return kept, nil
}
