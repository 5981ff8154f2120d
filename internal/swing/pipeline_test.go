package swing

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

func TestDetectBackswingsFourSwings(t *testing.T) {
	sig := baselineSignal(10000, 1000)
	centers := []int{1000, 3000, 5000, 7000}
	for _, c := range centers {
		addDip(sig, c, 500, 100)
	}
	store := storeFromSignal(sig)
	clip := Clip{Name: "range-session", Path: "range-session/range-session.MOV", FPS: 60, TotalFrames: 10000}

	res, err := DetectBackswings(store, clip, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.NumSwings() != len(centers) {
		t.Fatalf("expected %d swings, got %d: %v", len(centers), res.NumSwings(), res.PeakFrames)
	}
	for i, c := range centers {
		if p := res.PeakFrames[i]; p < c-5 || p > c+5 {
			t.Errorf("swing %d: expected peak within 5 frames of %d, got %d", i, c, p)
		}
	}
	for i, p := range res.PeakFrames {
		if p < 0 || p >= clip.TotalFrames {
			t.Errorf("peak %d out of bounds: %d", i, p)
		}
		if i > 0 && p <= res.PeakFrames[i-1] {
			t.Errorf("peaks not strictly increasing: %v", res.PeakFrames)
		}
	}
	if len(res.FilterLog) != 0 {
		t.Errorf("expected no filter removals, got %v", res.FilterLog)
	}
	if res.Name != clip.Name || res.FPS != clip.FPS || res.TotalFrames != clip.TotalFrames {
		t.Errorf("clip metadata not carried over: %+v", res)
	}
	if res.VideoPath != clip.Path {
		t.Errorf("expected video path %q, got %q", clip.Path, res.VideoPath)
	}
	if len(res.Smoothed) != 10000 || len(res.Combined) != 10000 {
		t.Errorf("expected full-length signals, got %d and %d", len(res.Smoothed), len(res.Combined))
	}
}

func TestDetectBackswingsDeterministic(t *testing.T) {
	sig := baselineSignal(3000, 1000)
	addDip(sig, 1000, 500, 100)
	addDip(sig, 2200, 500, 100)
	store := storeFromSignal(sig)
	clip := Clip{Name: "repeat", FPS: 60, TotalFrames: 3000}

	first, err := DetectBackswings(store, clip, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DetectBackswings(store, clip, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(first.PeakFrames, second.PeakFrames); diff != "" {
		t.Errorf("peak frames differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.FilterLog, second.FilterLog); diff != "" {
		t.Errorf("filter logs differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Smoothed, second.Smoothed); diff != "" {
		t.Errorf("smoothed signals differ between runs (-first +second):\n%s", diff)
	}
}

func TestDetectBackswingsInterpolatesDropout(t *testing.T) {
	// A two-frame tracker dropout with garbage coordinates must not spawn
	// a phantom swing or shift the real one.
	sig := baselineSignal(3000, 1000)
	addDip(sig, 1500, 500, 100)
	base := storeFromSignal(sig)
	frames := make([]keypoints.FrameSample, base.Len())
	for i := range frames {
		frames[i] = base.Sample(i)
	}
	for _, f := range []int{700, 701} {
		frames[f].Joints[keypoints.LeftWrist] = [2]float64{5000, 5000}
		frames[f].Joints[keypoints.RightWrist] = [2]float64{5000, 5000}
		frames[f].Scores[keypoints.LeftWrist] = 0.05
		frames[f].Scores[keypoints.RightWrist] = 0.05
	}
	store := keypoints.NewStore(frames, "")

	res, err := DetectBackswings(store, Clip{Name: "dropout", FPS: 60, TotalFrames: 3000}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	intsEqual(t, res.PeakFrames, []int{1500})
}

func TestDetectBackswingsShortClip(t *testing.T) {
	store := storeFromSignal(baselineSignal(30, 100))

	_, err := DetectBackswings(store, Clip{Name: "stub", TotalFrames: 30}, DefaultConfig())
	if err == nil {
		t.Fatal("expected error for clip shorter than the coarse window")
	}
	if !strings.Contains(err.Error(), "stub") {
		t.Errorf("error should name the clip: %v", err)
	}
}

func TestDetectContactsPairsAndDedups(t *testing.T) {
	combined := baselineSignal(1000, 1000)
	addRidge(combined, 560, 300, 40)
	br := &DetectionResult{
		Name:        "clip-a",
		PeakFrames:  []int{500, 505},
		Combined:    combined,
		FPS:         60,
		TotalFrames: 1000,
	}

	cr, err := DetectContacts(br, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both search windows nominate the same ridge; dedup collapses them.
	intsEqual(t, cr.ContactFrames, []int{560})
	if len(cr.FilterLog) != 1 || cr.FilterLog[0] != "Dedup: removed 1 duplicate(s)" {
		t.Errorf("expected dedup log line, got %v", cr.FilterLog)
	}
	if cr.Backswing != br {
		t.Error("contact result should reference its detection result")
	}
	if cr.Name != br.Name {
		t.Errorf("expected name %q, got %q", br.Name, cr.Name)
	}
	if len(cr.Smoothed) != len(combined) {
		t.Errorf("expected contact-smoothed length %d, got %d", len(combined), len(cr.Smoothed))
	}
}

func TestDetectContactsSkipsWalkOffSwing(t *testing.T) {
	combined := baselineSignal(1000, 1000)
	addRidge(combined, 560, 300, 40)
	br := &DetectionResult{
		Name:        "clip-b",
		PeakFrames:  []int{500, 995},
		Combined:    combined,
		TotalFrames: 1000,
	}

	cr, err := DetectContacts(br, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	intsEqual(t, cr.ContactFrames, []int{560})
	if cr.NumContacts() != br.NumSwings()-1 {
		t.Errorf("expected one fewer contact than swings, got %d and %d", cr.NumContacts(), br.NumSwings())
	}
	if len(cr.FilterLog) != 0 {
		t.Errorf("expected no filter log, got %v", cr.FilterLog)
	}
}

func TestDetectContactsEmptyBackswings(t *testing.T) {
	br := &DetectionResult{Name: "empty", Combined: baselineSignal(100, 10)}

	cr, err := DetectContacts(br, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cr.NumContacts() != 0 {
		t.Errorf("expected no contacts, got %v", cr.ContactFrames)
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	sig := baselineSignal(3500, 1000)
	addDip(sig, 1000, 500, 50)
	addDip(sig, 3000, 500, 50)
	addRidge(sig, 1080, 300, 20)
	addRidge(sig, 3080, 300, 20)
	store := storeFromSignal(sig)
	clip := Clip{Name: "two-swings", FPS: 60, TotalFrames: 3500}
	cfg := DefaultConfig()

	br, err := DetectBackswings(store, clip, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intsEqual(t, br.PeakFrames, []int{1000, 3000})

	cr, err := DetectContacts(br, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intsEqual(t, cr.ContactFrames, []int{1080, 3080})
}
