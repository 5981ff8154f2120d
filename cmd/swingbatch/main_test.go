package main

import (
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"

	"github.com/fairway-data/swing.report/internal/fsutil"
	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/testutil"
	"github.com/fairway-data/swing.report/internal/video"
)

func TestDiscoverVideos(t *testing.T) {
	dir := t.TempDir()
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0001.MOV"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0001", "keypoints", "IMG_0001.json"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0002.mp4"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0002", "keypoints", "IMG_0002.json"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0003.MOV"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0004", "keypoints", "IMG_0004.json"))

	jobs, err := discoverVideos(dir, nil)
	testutil.AssertNoError(t, err)

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Name != "IMG_0001" || jobs[1].Name != "IMG_0002" {
		t.Errorf("expected IMG_0001 and IMG_0002, got %s and %s", jobs[0].Name, jobs[1].Name)
	}
	if filepath.Ext(jobs[0].VideoPath) != ".MOV" {
		t.Errorf("expected .MOV video, got %s", jobs[0].VideoPath)
	}
	if filepath.Ext(jobs[1].VideoPath) != ".mp4" {
		t.Errorf("expected .mp4 fallback, got %s", jobs[1].VideoPath)
	}
	if filepath.Base(jobs[0].KeypointPath) != "IMG_0001.json" {
		t.Errorf("unexpected keypoint path %s", jobs[0].KeypointPath)
	}
}

func TestDiscoverVideosPrefersMOV(t *testing.T) {
	dir := t.TempDir()
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0005.MOV"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0005.mp4"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0005", "keypoints", "IMG_0005.json"))

	jobs, err := discoverVideos(dir, nil)
	testutil.AssertNoError(t, err)

	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if filepath.Ext(jobs[0].VideoPath) != ".MOV" {
		t.Errorf("expected .MOV preferred over .mp4, got %s", jobs[0].VideoPath)
	}
}

func TestDiscoverVideosSkip(t *testing.T) {
	dir := t.TempDir()
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0001.MOV"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0001", "keypoints", "IMG_0001.json"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0002.MOV"))
	testutil.TouchFile(t, filepath.Join(dir, "IMG_0002", "keypoints", "IMG_0002.json"))

	jobs, err := discoverVideos(dir, []string{"IMG_0001"})
	testutil.AssertNoError(t, err)

	if len(jobs) != 1 || jobs[0].Name != "IMG_0002" {
		t.Errorf("expected only IMG_0002, got %v", jobs)
	}
}

func TestDiscoverVideosMissingDir(t *testing.T) {
	_, err := discoverVideos(filepath.Join(t.TempDir(), "absent"), nil)
	testutil.AssertError(t, err)
}

func TestStatusLine(t *testing.T) {
	res := &swing.DetectionResult{Name: "IMG_0001", PeakFrames: []int{971, 3865}}

	if got := statusLine("IMG_0001", res, nil, false); got != "IMG_0001: 2 swings" {
		t.Errorf("expected plain status, got %q", got)
	}

	ct := &swing.ContactResult{Name: "IMG_0001", ContactFrames: []int{1031}}
	if got := statusLine("IMG_0001", res, ct, false); got != "IMG_0001: 2 swings, 1 contacts" {
		t.Errorf("expected contact count, got %q", got)
	}

	res.FilterLog = []string{
		"x+y outlier: removed peak at 512 (z=4.1)",
		"walk-off: masked frames 900-1100",
	}
	want := "IMG_0001: 2 swings, 1 contacts  [filters: x+y outlier, walk-off]"
	if got := statusLine("IMG_0001", res, ct, false); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := statusLine("IMG_0001", res, ct, true); got != want+" *** PROBLEMS ***" {
		t.Errorf("expected problems marker, got %q", got)
	}
}

func TestSplitSkip(t *testing.T) {
	if got := splitSkip(""); got != nil {
		t.Errorf("expected nil for empty skip list, got %v", got)
	}
	got := splitSkip("IMG_1189, IMG_0007 ,,")
	if len(got) != 2 || got[0] != "IMG_1189" || got[1] != "IMG_0007" {
		t.Errorf("expected two trimmed names, got %v", got)
	}
}

func TestCopyProblemArtifacts(t *testing.T) {
	vidOut := t.TempDir()
	problemsDir := filepath.Join(t.TempDir(), "problems")
	if err := os.WriteFile(filepath.Join(vidOut, "IMG_0001_backswing_grid.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	testutil.AssertNoError(t, copyProblemArtifacts("IMG_0001", vidOut, problemsDir))

	if !fsutil.IsFile(filepath.Join(problemsDir, "IMG_0001_backswing_grid.png")) {
		t.Error("expected grid copied into problems dir")
	}
	if fsutil.IsFile(filepath.Join(problemsDir, "IMG_0001_signal.png")) {
		t.Error("expected missing signal plot to be skipped")
	}
}

// writeBatchVideo renders a small video so processVideo can exercise the
// full artifact path.
func writeBatchVideo(t *testing.T, frames int, fps float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "IMG_0001.MOV")
	w, err := video.NewClipWriter(path, fps, 64, 48)
	if err != nil {
		t.Skipf("video writer unavailable: %v", err)
	}
	defer w.Close()
	for i := 0; i < frames; i++ {
		mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 40, 40, 0), 48, 64, gocv.MatTypeCV8UC3)
		if err := w.Write(mat); err != nil {
			mat.Close()
			t.Fatalf("write frame %d: %v", i, err)
		}
		mat.Close()
	}
	return path
}

func TestProcessVideoFlatSignal(t *testing.T) {
	kp := filepath.Join(t.TempDir(), "keypoints", "IMG_0001.json")
	testutil.WriteKeypointJSON(t, kp, 200)
	job := videoJob{
		Name:         "IMG_0001",
		VideoPath:    writeBatchVideo(t, 200, 30),
		KeypointPath: kp,
	}
	outDir := t.TempDir()

	out := processVideo(job, outDir, swing.DefaultConfig(), batchOptions{})
	testutil.AssertNoError(t, out.Err)

	// Constant keypoints carry no swing motion.
	if got := out.Result.NumSwings(); got != 0 {
		t.Errorf("expected 0 swings from flat signal, got %d", got)
	}
	if len(out.Flags) == 0 {
		t.Error("expected too-few-swings flag")
	}
	if want := "IMG_0001: 0 swings *** PROBLEMS ***"; out.Line != want {
		t.Errorf("expected %q, got %q", want, out.Line)
	}
	if !fsutil.IsFile(filepath.Join(outDir, "IMG_0001_signal.png")) {
		t.Error("expected signal plot artifact")
	}
	if !fsutil.IsFile(filepath.Join(outDir, "IMG_0001_signal.html")) {
		t.Error("expected interactive chart artifact")
	}
	if fsutil.IsFile(filepath.Join(outDir, "IMG_0001_backswing_grid.png")) {
		t.Error("expected no grid with zero detections")
	}
}

func TestProcessVideoMissingKeypoints(t *testing.T) {
	job := videoJob{
		Name:         "IMG_0001",
		VideoPath:    "absent.MOV",
		KeypointPath: filepath.Join(t.TempDir(), "absent.json"),
	}
	out := processVideo(job, t.TempDir(), swing.DefaultConfig(), batchOptions{})
	testutil.AssertError(t, out.Err)
}
