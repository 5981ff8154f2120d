package swing

import (
	"strings"
	"testing"
)

func TestDetectContactPointsFindsRidge(t *testing.T) {
	sig := baselineSignal(1000, 1000)
	addRidge(sig, 560, 300, 40)

	contacts, smoothed, err := DetectContactPoints([]int{500}, sig, 1000, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(smoothed) != 1000 {
		t.Errorf("expected smoothed length 1000, got %d", len(smoothed))
	}
	intsEqual(t, contacts, []int{560})
}

func TestDetectContactPointsSkipsLateBackswing(t *testing.T) {
	sig := baselineSignal(1000, 1000)
	addRidge(sig, 560, 300, 40)
	backswings := []int{500, 995}

	contacts, _, err := DetectContactPoints(backswings, sig, 1000, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 995+10 starts past the end of the clip, so that backswing
	// contributes no contact.
	intsEqual(t, contacts, []int{560})
	if len(contacts) != len(backswings)-1 {
		t.Errorf("expected one fewer contact than backswings, got %d and %d", len(contacts), len(backswings))
	}
}

func TestDetectContactPointsClampsWindow(t *testing.T) {
	sig := baselineSignal(1000, 1000)
	addRidge(sig, 980, 300, 15)

	contacts, _, err := DetectContactPoints([]int{950}, sig, 1000, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	intsEqual(t, contacts, []int{980})
}

func TestDetectContactPointsNoBackswings(t *testing.T) {
	contacts, smoothed, err := DetectContactPoints(nil, baselineSignal(100, 5), 100, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("expected no contacts, got %v", contacts)
	}
	if len(smoothed) != 100 {
		t.Errorf("expected smoothed length 100, got %d", len(smoothed))
	}
}

func TestDetectContactPointsShortSignal(t *testing.T) {
	_, _, err := DetectContactPoints([]int{0}, []float64{1, 2, 3}, 3, DefaultConfig())
	if err == nil {
		t.Fatal("expected error for signal shorter than the contact window")
	}
	if !strings.Contains(err.Error(), "contact smoothing") {
		t.Errorf("expected contact smoothing error, got %v", err)
	}
}
