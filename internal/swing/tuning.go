package swing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Tuning is the JSON-file overlay for Config. Every field is a pointer:
// fields omitted from the file keep their defaults, so partial tuning
// files are safe to ship per dataset.
type Tuning struct {
	SavgolWindow *int `json:"savgol_window,omitempty"`
	SavgolPoly   *int `json:"savgol_poly,omitempty"`
	CoarseWindow *int `json:"coarse_window,omitempty"`
	CoarsePoly   *int `json:"coarse_poly,omitempty"`

	PeakProminence *float64 `json:"peak_prominence,omitempty"`
	PeakDistance   *int     `json:"peak_distance,omitempty"`
	LookBehind     *int     `json:"look_behind,omitempty"`
	LookAhead      *int     `json:"look_ahead,omitempty"`
	SearchBack     *int     `json:"search_back,omitempty"`
	RefineWindow   *int     `json:"refine_window,omitempty"`

	MinSwingGap        *int     `json:"min_swing_gap,omitempty"`
	EndOfVideoPct      *float64 `json:"end_of_video_pct,omitempty"`
	XYOutlierMADThresh *float64 `json:"xy_outlier_mad_thresh,omitempty"`
	XYOutlierMinPeaks  *int     `json:"xy_outlier_min_peaks,omitempty"`
	XYOutlierMADFloor  *float64 `json:"xy_outlier_mad_floor,omitempty"`
	XOffMADThresh      *float64 `json:"xoff_mad_thresh,omitempty"`
	XOffMADFloor       *float64 `json:"xoff_mad_floor,omitempty"`

	LeftWrist     *int     `json:"left_wrist,omitempty"`
	RightWrist    *int     `json:"right_wrist,omitempty"`
	LeftShoulder  *int     `json:"left_shoulder,omitempty"`
	RightShoulder *int     `json:"right_shoulder,omitempty"`
	ConfThreshold *float64 `json:"conf_threshold,omitempty"`

	ContactSearchMin    *int `json:"contact_search_min,omitempty"`
	ContactSearchMax    *int `json:"contact_search_max,omitempty"`
	ContactSavgolWindow *int `json:"contact_savgol_window,omitempty"`
	ContactSavgolPoly   *int `json:"contact_savgol_poly,omitempty"`

	MinExpectedSwings      *int     `json:"min_expected_swings,omitempty"`
	MaxExpectedSwings      *int     `json:"max_expected_swings,omitempty"`
	LowConfWindow          *int     `json:"low_conf_window,omitempty"`
	LowConfThreshold       *float64 `json:"low_conf_threshold,omitempty"`
	CloseGapSeconds        *float64 `json:"close_gap_seconds,omitempty"`
	FlagMADThreshold       *float64 `json:"flag_mad_threshold,omitempty"`
	DownswingOutlierFrames *int     `json:"downswing_outlier_frames,omitempty"`
}

// LoadTuning reads a tuning overlay from a JSON file. The path must have
// a .json extension and the file must be under 1 MB.
func LoadTuning(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat tuning file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("tuning file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}
	t := &Tuning{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning JSON: %w", err)
	}
	return t, nil
}

// Apply overlays the set fields onto cfg and returns the result. The
// caller validates the merged Config.
func (t *Tuning) Apply(cfg Config) Config {
	if t == nil {
		return cfg
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	setInt(&cfg.SavgolWindow, t.SavgolWindow)
	setInt(&cfg.SavgolPoly, t.SavgolPoly)
	setInt(&cfg.CoarseWindow, t.CoarseWindow)
	setInt(&cfg.CoarsePoly, t.CoarsePoly)

	setFloat(&cfg.PeakProminence, t.PeakProminence)
	setInt(&cfg.PeakDistance, t.PeakDistance)
	setInt(&cfg.LookBehind, t.LookBehind)
	setInt(&cfg.LookAhead, t.LookAhead)
	setInt(&cfg.SearchBack, t.SearchBack)
	setInt(&cfg.RefineWindow, t.RefineWindow)

	setInt(&cfg.MinSwingGap, t.MinSwingGap)
	setFloat(&cfg.EndOfVideoPct, t.EndOfVideoPct)
	setFloat(&cfg.XYOutlierMADThresh, t.XYOutlierMADThresh)
	setInt(&cfg.XYOutlierMinPeaks, t.XYOutlierMinPeaks)
	setFloat(&cfg.XYOutlierMADFloor, t.XYOutlierMADFloor)
	setFloat(&cfg.XOffMADThresh, t.XOffMADThresh)
	setFloat(&cfg.XOffMADFloor, t.XOffMADFloor)

	setInt(&cfg.LeftWrist, t.LeftWrist)
	setInt(&cfg.RightWrist, t.RightWrist)
	setInt(&cfg.LeftShoulder, t.LeftShoulder)
	setInt(&cfg.RightShoulder, t.RightShoulder)
	setFloat(&cfg.ConfThreshold, t.ConfThreshold)

	setInt(&cfg.ContactSearchMin, t.ContactSearchMin)
	setInt(&cfg.ContactSearchMax, t.ContactSearchMax)
	setInt(&cfg.ContactSavgolWindow, t.ContactSavgolWindow)
	setInt(&cfg.ContactSavgolPoly, t.ContactSavgolPoly)

	setInt(&cfg.MinExpectedSwings, t.MinExpectedSwings)
	setInt(&cfg.MaxExpectedSwings, t.MaxExpectedSwings)
	setInt(&cfg.LowConfWindow, t.LowConfWindow)
	setFloat(&cfg.LowConfThreshold, t.LowConfThreshold)
	setFloat(&cfg.CloseGapSeconds, t.CloseGapSeconds)
	setFloat(&cfg.FlagMADThreshold, t.FlagMADThreshold)
	setInt(&cfg.DownswingOutlierFrames, t.DownswingOutlierFrames)

	return cfg
}
