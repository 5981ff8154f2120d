package visualize

import (
	"fmt"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/units"
	"github.com/fairway-data/swing.report/internal/video"
)

// ExtractClips writes a short mp4 clip around each frame, half a second
// either side at the source frame rate, named "<prefix>_NN.mp4" starting
// from 01. Returns the written paths. A decode failure mid-clip truncates
// that clip and moves on.
func ExtractClips(frames []int, videoPath string, fps float64, outDir, prefix string) ([]string, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	r, err := video.Open(videoPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	meta := r.Meta()
	half := units.SecondsToFrames(0.5, fps)

	mat := gocv.NewMat()
	defer mat.Close()

	var paths []string
	for i, pf := range frames {
		clamped := min(pf, meta.TotalFrames-1)
		start := max(0, clamped-half)
		end := min(meta.TotalFrames, clamped+half+1)

		out := filepath.Join(outDir, fmt.Sprintf("%s_%02d.mp4", prefix, i+1))
		w, err := video.NewClipWriter(out, fps, meta.Width, meta.Height)
		if err != nil {
			return paths, err
		}

		r.Seek(start)
		wrote := 0
		for f := start; f < end; f++ {
			if !r.Next(&mat) {
				break
			}
			if err := w.Write(mat); err != nil {
				w.Close()
				return paths, fmt.Errorf("write clip %s: %w", out, err)
			}
			wrote++
		}
		if err := w.Close(); err != nil {
			return paths, fmt.Errorf("close clip %s: %w", out, err)
		}
		swing.Diagf("clip: wrote %s (%d frames)", out, wrote)
		paths = append(paths, out)
	}
	return paths, nil
}
