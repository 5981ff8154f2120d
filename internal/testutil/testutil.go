// Package testutil provides shared assertion helpers and dataset fixtures
// for tests that lay out keypoint files and video directories on disk.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// TouchFile creates an empty file at path, making parent directories as
// needed.
func TouchFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

// WriteKeypointJSON writes an estimator-format keypoint file with the
// given frame count: all joints at fixed positions with full confidence.
func WriteKeypointJSON(t *testing.T, path string, frames int) {
	t.Helper()

	raw := make(map[string]map[string]any, frames)
	joints := make([][]float64, keypoints.NumJoints)
	scores := make([]float64, keypoints.NumJoints)
	for j := range joints {
		joints[j] = []float64{float64(100 + j), float64(200 + j)}
		scores[j] = 0.9
	}
	for i := 0; i < frames; i++ {
		raw[fmt.Sprintf("frame_%d", i)] = map[string]any{
			"keypoints":       joints,
			"keypoint_scores": scores,
		}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal keypoints: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
