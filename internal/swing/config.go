package swing

import (
	"fmt"

	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

// Config bundles every tunable of the detection pipeline. It is a plain
// value: construct it once, validate it, and share it read-only across
// concurrent per-video runs. Defaults are tuned on 60 fps footage;
// frame-count parameters scale proportionally for other rates.
type Config struct {
	// Smoothing
	SavgolWindow int // fine Savitzky-Golay window in frames, ~150 ms at 60 fps (default: 9)
	SavgolPoly   int // fine polynomial order (default: 3)
	CoarseWindow int // coarse window in frames, ~1 s at 60 fps (default: 61)
	CoarsePoly   int // coarse polynomial order (default: 3)

	// Peak detection
	PeakProminence float64 // min prominence in pixels on the inverted signal (default: 300)
	PeakDistance   int     // min frames between anchor peaks, ~8.3 s (default: 500)
	LookBehind     int     // frames before a candidate scored for approach jitter (default: 60)
	LookAhead      int     // frames after a candidate scored for departure drop (default: 30)
	SearchBack     int     // max frames to walk back from an anchor, ~10 s (default: 600)
	RefineWindow   int     // forward refinement window in frames, ~250 ms (default: 15)

	// Post-processing filters
	MinSwingGap        int     // peaks closer than this merge, keeping the deeper (default: 600)
	EndOfVideoPct      float64 // trailing fraction of the video to reject (default: 0.03)
	XYOutlierMADThresh float64 // MAD multiplier for the x+y outlier filter (default: 3.0)
	XYOutlierMinPeaks  int     // min peaks before statistical filters apply (default: 3)
	XYOutlierMADFloor  float64 // MAD floor in pixels for the x+y filter (default: 50)
	XOffMADThresh      float64 // MAD multiplier for follow-through rejection (default: 3.0)
	XOffMADFloor       float64 // MAD floor in pixels for follow-through rejection (default: 20)

	// Keypoint indices and confidence
	LeftWrist     int     // COCO-17 index of the left wrist (default: 9)
	RightWrist    int     // COCO-17 index of the right wrist (default: 10)
	LeftShoulder  int     // COCO-17 index of the left shoulder (default: 5)
	RightShoulder int     // COCO-17 index of the right shoulder (default: 6)
	ConfThreshold float64 // frames below this confidence are interpolated (default: 0.3)

	// Contact detection
	ContactSearchMin    int // frames after a backswing to start the search, ~170 ms (default: 10)
	ContactSearchMax    int // frames after a backswing to end the search, ~1.5 s (default: 90)
	ContactSavgolWindow int // contact smoothing window in frames, ~83 ms (default: 5)
	ContactSavgolPoly   int // contact smoothing polynomial order (default: 2)

	// Advisory thresholds, consumed by the review package rather than the
	// detection pipeline itself.
	MinExpectedSwings      int     // flag a video with fewer swings (default: 2)
	MaxExpectedSwings      int     // flag a video with more swings (default: 15)
	LowConfWindow          int     // half-window for the wrist-confidence check (default: 5)
	LowConfThreshold       float64 // mean wrist confidence below this flags a peak (default: 0.4)
	CloseGapSeconds        float64 // successive swings closer than this flag (default: 8.0)
	FlagMADThreshold       float64 // MAD z-score above which a peak's x+y flags (default: 2.0)
	DownswingOutlierFrames int     // downswings longer than this flag (default: 40)
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		SavgolWindow: 9,
		SavgolPoly:   3,
		CoarseWindow: 61,
		CoarsePoly:   3,

		PeakProminence: 300,
		PeakDistance:   500,
		LookBehind:     60,
		LookAhead:      30,
		SearchBack:     600,
		RefineWindow:   15,

		MinSwingGap:        600,
		EndOfVideoPct:      0.03,
		XYOutlierMADThresh: 3.0,
		XYOutlierMinPeaks:  3,
		XYOutlierMADFloor:  50,
		XOffMADThresh:      3.0,
		XOffMADFloor:       20,

		LeftWrist:     keypoints.LeftWrist,
		RightWrist:    keypoints.RightWrist,
		LeftShoulder:  keypoints.LeftShoulder,
		RightShoulder: keypoints.RightShoulder,
		ConfThreshold: 0.3,

		ContactSearchMin:    10,
		ContactSearchMax:    90,
		ContactSavgolWindow: 5,
		ContactSavgolPoly:   2,

		MinExpectedSwings:      2,
		MaxExpectedSwings:      15,
		LowConfWindow:          5,
		LowConfThreshold:       0.4,
		CloseGapSeconds:        8.0,
		FlagMADThreshold:       2.0,
		DownswingOutlierFrames: 40,
	}
}

// Validate checks that the configuration is usable.
// Returns an error for the first parameter out of range.
func (c Config) Validate() error {
	if c.SavgolWindow <= 0 || c.SavgolWindow%2 == 0 {
		return fmt.Errorf("SavgolWindow must be positive and odd, got %d", c.SavgolWindow)
	}
	if c.SavgolPoly < 0 || c.SavgolPoly >= c.SavgolWindow {
		return fmt.Errorf("SavgolPoly must be in [0, SavgolWindow), got %d", c.SavgolPoly)
	}
	if c.CoarseWindow <= 0 || c.CoarseWindow%2 == 0 {
		return fmt.Errorf("CoarseWindow must be positive and odd, got %d", c.CoarseWindow)
	}
	if c.CoarsePoly < 0 || c.CoarsePoly >= c.CoarseWindow {
		return fmt.Errorf("CoarsePoly must be in [0, CoarseWindow), got %d", c.CoarsePoly)
	}
	if c.ContactSavgolWindow <= 0 || c.ContactSavgolWindow%2 == 0 {
		return fmt.Errorf("ContactSavgolWindow must be positive and odd, got %d", c.ContactSavgolWindow)
	}
	if c.ContactSavgolPoly < 0 || c.ContactSavgolPoly >= c.ContactSavgolWindow {
		return fmt.Errorf("ContactSavgolPoly must be in [0, ContactSavgolWindow), got %d", c.ContactSavgolPoly)
	}
	if c.PeakProminence < 0 {
		return fmt.Errorf("PeakProminence must be non-negative, got %f", c.PeakProminence)
	}
	if c.PeakDistance < 0 {
		return fmt.Errorf("PeakDistance must be non-negative, got %d", c.PeakDistance)
	}
	if c.LookBehind < 0 || c.LookAhead < 0 {
		return fmt.Errorf("LookBehind and LookAhead must be non-negative, got %d and %d", c.LookBehind, c.LookAhead)
	}
	if c.SearchBack < 0 {
		return fmt.Errorf("SearchBack must be non-negative, got %d", c.SearchBack)
	}
	if c.RefineWindow < 0 {
		return fmt.Errorf("RefineWindow must be non-negative, got %d", c.RefineWindow)
	}
	if c.MinSwingGap < 0 {
		return fmt.Errorf("MinSwingGap must be non-negative, got %d", c.MinSwingGap)
	}
	if c.EndOfVideoPct < 0 || c.EndOfVideoPct >= 1 {
		return fmt.Errorf("EndOfVideoPct must be in [0, 1), got %f", c.EndOfVideoPct)
	}
	if c.XYOutlierMADThresh <= 0 || c.XOffMADThresh <= 0 {
		return fmt.Errorf("MAD multipliers must be positive, got %f and %f", c.XYOutlierMADThresh, c.XOffMADThresh)
	}
	if c.XYOutlierMADFloor < 0 || c.XOffMADFloor < 0 {
		return fmt.Errorf("MAD floors must be non-negative, got %f and %f", c.XYOutlierMADFloor, c.XOffMADFloor)
	}
	if c.XYOutlierMinPeaks < 0 {
		return fmt.Errorf("XYOutlierMinPeaks must be non-negative, got %d", c.XYOutlierMinPeaks)
	}
	for _, idx := range []int{c.LeftWrist, c.RightWrist, c.LeftShoulder, c.RightShoulder} {
		if idx < 0 || idx >= keypoints.NumJoints {
			return fmt.Errorf("keypoint indices must be in [0, %d), got %d", keypoints.NumJoints, idx)
		}
	}
	if c.ConfThreshold < 0 || c.ConfThreshold > 1 {
		return fmt.Errorf("ConfThreshold must be in [0, 1], got %f", c.ConfThreshold)
	}
	if c.ContactSearchMin < 0 || c.ContactSearchMax < c.ContactSearchMin {
		return fmt.Errorf("contact search window [%d, %d] is invalid", c.ContactSearchMin, c.ContactSearchMax)
	}
	return nil
}

// WithConfThreshold sets the interpolation confidence threshold.
func (c Config) WithConfThreshold(v float64) Config {
	c.ConfThreshold = v
	return c
}

// WithPeakProminence sets the minimum anchor prominence in pixels.
func (c Config) WithPeakProminence(v float64) Config {
	c.PeakProminence = v
	return c
}

// WithPeakDistance sets the minimum frames between anchor peaks.
func (c Config) WithPeakDistance(n int) Config {
	c.PeakDistance = n
	return c
}

// WithMinSwingGap sets the merge threshold between accepted peaks.
func (c Config) WithMinSwingGap(n int) Config {
	c.MinSwingGap = n
	return c
}

// WithSearchBack sets how far before an anchor the candidate search scans.
func (c Config) WithSearchBack(n int) Config {
	c.SearchBack = n
	return c
}

// WithEndOfVideoPct sets the trailing fraction of the video to reject.
func (c Config) WithEndOfVideoPct(v float64) Config {
	c.EndOfVideoPct = v
	return c
}

// WithContactSearchWindow sets the forward contact search window in frames
// after a backswing.
func (c Config) WithContactSearchWindow(minFrames, maxFrames int) Config {
	c.ContactSearchMin = minFrames
	c.ContactSearchMax = maxFrames
	return c
}

// WithExpectedSwings sets the advisory per-video swing count bounds used
// by problem flagging.
func (c Config) WithExpectedSwings(minSwings, maxSwings int) Config {
	c.MinExpectedSwings = minSwings
	c.MaxExpectedSwings = maxSwings
	return c
}
