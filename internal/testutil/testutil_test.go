package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

func TestAssertNoError_NilErr(t *testing.T) {
	fakeT := &testing.T{}
	AssertNoError(fakeT, nil)
	if fakeT.Failed() {
		t.Error("expected no failure for nil error")
	}
}

func TestAssertError_WithErr(t *testing.T) {
	fakeT := &testing.T{}
	AssertError(fakeT, errors.New("something wrong"))
	if fakeT.Failed() {
		t.Error("expected no failure when error is present")
	}
}

func TestTouchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "IMG_0001.MOV")
	TouchFile(t, path)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty file, got %d bytes", info.Size())
	}
}

func TestWriteKeypointJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keypoints", "IMG_0001.json")
	WriteKeypointJSON(t, path, 3)

	store, err := keypoints.Load(path)
	if err != nil {
		t.Fatalf("expected loadable keypoint file: %v", err)
	}
	if store.Len() != 3 {
		t.Errorf("expected 3 frames, got %d", store.Len())
	}
	if got := store.Score(0, keypoints.LeftWrist); got != 0.9 {
		t.Errorf("expected wrist confidence 0.9, got %f", got)
	}
}
