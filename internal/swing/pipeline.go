package swing

import (
	"fmt"

	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

// DetectBackswings runs the whole backswing pipeline on one clip: build
// the combined wrist signal from the keypoint store, detect and refine
// peaks, then filter. The returned result carries everything downstream
// stages need (contact detection, review, CSV rows, rendering).
func DetectBackswings(store *keypoints.Store, clip Clip, cfg Config) (*DetectionResult, error) {
	ws := ExtractWristSignal(store, cfg)
	combined := BuildCombined(ws, cfg.ConfThreshold)
	Diagf("%s: %d frames, %d keypoint samples", clip.Name, clip.TotalFrames, store.Len())

	peaks, fine, err := DetectPeaks(combined, clip.TotalFrames, cfg)
	if err != nil {
		return nil, fmt.Errorf("detect backswings %s: %w", clip.Name, err)
	}

	ctx := &FilterContext{
		Smoothed:    fine,
		TotalFrames: clip.TotalFrames,
		Frames:      store,
		Config:      cfg,
	}
	peaks, filterLog := RunFilters(peaks, ctx)

	return &DetectionResult{
		Name:         clip.Name,
		PeakFrames:   peaks,
		Smoothed:     fine,
		Combined:     combined,
		FPS:          clip.FPS,
		TotalFrames:  clip.TotalFrames,
		FilterLog:    filterLog,
		Frames:       store,
		KeypointPath: store.Path(),
		VideoPath:    clip.Path,
	}, nil
}

// DetectContacts extends a backswing detection with ball-contact frames.
// The contact search is bounded by the keypoint sample count rather than
// the video frame count, since the search indexes the keypoint-derived
// signal.
func DetectContacts(br *DetectionResult, cfg Config) (*ContactResult, error) {
	frameCount := frameCountFor(br)
	contacts, smoothed, err := DetectContactPoints(br.PeakFrames, br.Combined, frameCount, cfg)
	if err != nil {
		return nil, fmt.Errorf("detect contacts %s: %w", br.Name, err)
	}
	contacts, filterLog := dedupFilter(contacts, nil)
	for _, line := range filterLog {
		Diagf("%s", line)
	}

	return &ContactResult{
		Name:          br.Name,
		ContactFrames: contacts,
		Backswing:     br,
		Smoothed:      smoothed,
		FilterLog:     filterLog,
	}, nil
}

func frameCountFor(br *DetectionResult) int {
	if br.Frames != nil {
		return br.Frames.Len()
	}
	return len(br.Combined)
}
