// Package units provides shared conversions between the frame and time
// domains of a video clip.
package units

import (
	"fmt"
	"math"
)

// FrameToSeconds converts a frame index to a timestamp at the given frame
// rate. Returns 0 when fps is not positive.
func FrameToSeconds(frame int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frame) / fps
}

// SecondsToFrames converts a duration in seconds to a whole frame count at
// the given frame rate, rounding to the nearest frame.
func SecondsToFrames(seconds, fps float64) int {
	if fps <= 0 {
		return 0
	}
	return int(math.Round(seconds * fps))
}

// FrameGapSeconds returns the span in seconds between two frame indices.
func FrameGapSeconds(from, to int, fps float64) float64 {
	return FrameToSeconds(to-from, fps)
}

// FormatTimestamp renders a timestamp as "m:ss.t" for chart labels and
// frame captions (e.g. 75.25s -> "1:15.2").
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	rem := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, rem)
}
