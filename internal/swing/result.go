package swing

import "github.com/fairway-data/swing.report/internal/swing/keypoints"

// Clip identifies one recorded video: its display name, the path to the
// movie file, and the frame geometry detection needs.
type Clip struct {
	Name        string
	Path        string
	FPS         float64
	TotalFrames int
}

// DetectionResult is the full output of backswing detection on one clip.
// PeakFrames are the filtered top-of-backswing frame indices, sorted
// ascending. Smoothed and Combined are kept for contact detection,
// review, and rendering. FilterLog records every removal the filter
// chain performed.
type DetectionResult struct {
	Name        string
	PeakFrames  []int
	Smoothed    []float64
	Combined    []float64
	FPS         float64
	TotalFrames int
	FilterLog   []string

	Frames       *keypoints.Store
	KeypointPath string
	VideoPath    string
}

// NumSwings returns the number of detected backswings.
func (r *DetectionResult) NumSwings() int { return len(r.PeakFrames) }

// ContactResult pairs a backswing detection with the ball-contact frames
// found after each top. ContactFrames[i] follows Backswing.PeakFrames[i]
// when both exist; the contact list can be shorter when a swing runs off
// the end of the clip.
type ContactResult struct {
	Name          string
	ContactFrames []int
	Backswing     *DetectionResult
	Smoothed      []float64
	FilterLog     []string
}

// NumContacts returns the number of detected contact frames.
func (r *ContactResult) NumContacts() int { return len(r.ContactFrames) }
