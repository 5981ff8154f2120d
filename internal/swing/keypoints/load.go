package keypoints

import (
	"encoding/json"
	"fmt"
	"os"
)

// frameRecord mirrors one entry of the estimator's JSON output.
type frameRecord struct {
	Keypoints [][]float64 `json:"keypoints"`
	Scores    []float64   `json:"keypoint_scores"`
}

// Load reads a keypoint JSON file: an object mapping "frame_0" through
// "frame_N-1" to records with a 17×2 "keypoints" array and a 17-length
// "keypoint_scores" array. Frames must be contiguous from zero; gaps,
// missing joints, and mismatched score counts are errors, so the pipeline
// downstream can assume a well-formed dense store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keypoints: open %s: %w", path, err)
	}
	defer f.Close()

	raw := make(map[string]frameRecord)
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("keypoints: decode %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("keypoints: %s contains no frames", path)
	}

	frames := make([]FrameSample, len(raw))
	for i := range frames {
		rec, ok := raw[fmt.Sprintf("frame_%d", i)]
		if !ok {
			return nil, fmt.Errorf("keypoints: %s has %d frames but no frame_%d", path, len(raw), i)
		}
		if len(rec.Keypoints) != NumJoints {
			return nil, fmt.Errorf("keypoints: %s frame_%d has %d joints, want %d", path, i, len(rec.Keypoints), NumJoints)
		}
		if len(rec.Scores) != NumJoints {
			return nil, fmt.Errorf("keypoints: %s frame_%d has %d scores, want %d", path, i, len(rec.Scores), NumJoints)
		}
		for j, kp := range rec.Keypoints {
			if len(kp) != 2 {
				return nil, fmt.Errorf("keypoints: %s frame_%d joint %d has %d coordinates, want 2", path, i, j, len(kp))
			}
			frames[i].Joints[j] = [2]float64{kp[0], kp[1]}
			frames[i].Scores[j] = rec.Scores[j]
		}
	}
	return &Store{frames: frames, path: path}, nil
}
