// Package review runs heuristic problem checks over detection results so
// suspect videos can be routed to manual inspection.
package review

import (
	"fmt"
	"math"

	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/swing/dsp"
	"github.com/fairway-data/swing.report/internal/swing/keypoints"
	"github.com/fairway-data/swing.report/internal/units"
)

// Flag marks a suspect detection for manual review. Swing is the 1-based
// swing number the flag applies to, or 0 for video-level flags.
type Flag struct {
	Swing  int
	Reason string
}

// Label returns the display form of the flag's subject, "Swing N" for
// per-swing flags and "VIDEO" for video-level ones.
func (f Flag) Label() string {
	if f.Swing == 0 {
		return "VIDEO"
	}
	return fmt.Sprintf("Swing %d", f.Swing)
}

// FlagDetection checks a backswing detection result for potential issues:
// too few or too many swings, peaks whose x+y value is a MAD outlier, low
// wrist confidence around a peak, and successive swings closer together
// than CloseGapSeconds. An empty result means no problems were found.
func FlagDetection(res *swing.DetectionResult, cfg swing.Config) []Flag {
	var flags []Flag
	n := res.NumSwings()
	if n < cfg.MinExpectedSwings {
		flags = append(flags, Flag{Reason: fmt.Sprintf("Only %d swing(s) (expected >= %d)", n, cfg.MinExpectedSwings)})
	}
	if n > cfg.MaxExpectedSwings {
		flags = append(flags, Flag{Reason: fmt.Sprintf("%d swings (expected <= %d)", n, cfg.MaxExpectedSwings)})
	}
	if n == 0 {
		return flags
	}

	vals := make([]float64, n)
	for i, p := range res.PeakFrames {
		vals[i] = res.Smoothed[p]
	}
	med := dsp.Median(vals)
	// The raw MAD is used here, unfloored, so genuinely tight clusters
	// never self-flag.
	mad := 0.0
	if n > 1 {
		mad = dsp.MAD(vals)
	}

	for i, p := range res.PeakFrames {
		if mad > 0 && n >= 3 {
			z := math.Abs(vals[i]-med) / mad
			if z > cfg.FlagMADThreshold {
				flags = append(flags, Flag{
					Swing:  i + 1,
					Reason: fmt.Sprintf("x+y=%.0f is %.1f MADs from median", vals[i], z),
				})
			}
		}
		if conf, ok := meanWristConf(res.Frames, p, cfg); ok && conf < cfg.LowConfThreshold {
			flags = append(flags, Flag{
				Swing:  i + 1,
				Reason: fmt.Sprintf("Low wrist conf: %.2f", conf),
			})
		}
		if i > 0 && res.FPS > 0 {
			gap := units.FrameGapSeconds(res.PeakFrames[i-1], p, res.FPS)
			if gap < cfg.CloseGapSeconds {
				flags = append(flags, Flag{
					Swing:  i + 1,
					Reason: fmt.Sprintf("Only %.1fs since previous swing", gap),
				})
			}
		}
	}
	return flags
}

// FlagDownswings checks paired backswing-to-contact spans and flags pairs
// whose downswing exceeds DownswingOutlierFrames, which usually means the
// contact search latched onto a follow-through rather than the strike.
func FlagDownswings(cr *swing.ContactResult, cfg swing.Config) []Flag {
	if cr == nil || cr.Backswing == nil {
		return nil
	}
	var flags []Flag
	n := min(cr.Backswing.NumSwings(), cr.NumContacts())
	for i := 0; i < n; i++ {
		span := cr.ContactFrames[i] - cr.Backswing.PeakFrames[i]
		if span > cfg.DownswingOutlierFrames {
			flags = append(flags, Flag{
				Swing:  i + 1,
				Reason: fmt.Sprintf("Downswing %d frames (expected <= %d)", span, cfg.DownswingOutlierFrames),
			})
		}
	}
	return flags
}

// meanWristConf averages the left/right wrist confidence over the frames
// within LowConfWindow of the peak. ok is false when no frames overlap
// the stored keypoint range.
func meanWristConf(store *keypoints.Store, peak int, cfg swing.Config) (float64, bool) {
	if store == nil || store.Len() == 0 {
		return 0, false
	}
	s := max(0, peak-cfg.LowConfWindow)
	e := min(store.Len(), peak+cfg.LowConfWindow+1)
	if s >= e {
		return 0, false
	}
	var sum float64
	for f := s; f < e; f++ {
		sum += (store.Score(f, cfg.LeftWrist) + store.Score(f, cfg.RightWrist)) / 2
	}
	return sum / float64(e-s), true
}
