package dsp

import (
	"reflect"
	"testing"
)

func TestFindPeaksSimple(t *testing.T) {
	x := []float64{0, 1, 0, 2, 0, 3, 0}
	got := FindPeaks(x, 0, 0)
	want := []int{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected peaks %v, got %v", want, got)
	}
}

func TestFindPeaksPlateauMidpoint(t *testing.T) {
	// Odd-length plateau: exact midpoint. Even-length: left of centre.
	x := []float64{0, 1, 1, 1, 0}
	if got := FindPeaks(x, 0, 0); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("odd plateau: expected [2], got %v", got)
	}
	x = []float64{0, 1, 1, 0}
	if got := FindPeaks(x, 0, 0); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("even plateau: expected [1], got %v", got)
	}
}

func TestFindPeaksEndpointsExcluded(t *testing.T) {
	x := []float64{3, 2, 1, 2, 5}
	if got := FindPeaks(x, 0, 0); len(got) != 0 {
		t.Errorf("expected no peaks on monotone edges, got %v", got)
	}
}

func TestFindPeaksDistanceKeepsTaller(t *testing.T) {
	x := make([]float64, 40)
	x[10] = 5 // taller
	x[14] = 3 // within 5 frames, suppressed
	x[30] = 4 // far away, kept
	got := FindPeaks(x, 0, 5)
	want := []int{10, 30}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected peaks %v, got %v", want, got)
	}
}

func TestFindPeaksDistanceTallerOnRight(t *testing.T) {
	x := make([]float64, 40)
	x[10] = 3
	x[14] = 5
	got := FindPeaks(x, 0, 5)
	want := []int{14}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected peaks %v, got %v", want, got)
	}
}

func TestFindPeaksProminence(t *testing.T) {
	// Main peak rises 10 above the signal floor; the shoulder bump at
	// index 8 only rises 0.5 above its saddle.
	x := []float64{0, 2, 5, 8, 10, 9, 8.5, 8, 8.5, 7, 4, 1, 0}
	got := FindPeaks(x, 1.0, 0)
	want := []int{4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected peaks %v, got %v", want, got)
	}

	// With the threshold below the bump's prominence both survive.
	got = FindPeaks(x, 0.25, 0)
	want = []int{4, 8}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected peaks %v, got %v", want, got)
	}
}

func TestProminenceReachesSignalEdge(t *testing.T) {
	// Nothing taller on either side: the walk reaches both edges and the
	// prominence is measured against the higher of the two edge minima.
	x := []float64{2, 3, 7, 1, 0}
	if got := Prominence(x, 2); got != 5 {
		t.Errorf("expected prominence 5, got %v", got)
	}
}

func TestFindPeaksEmptyAndFlat(t *testing.T) {
	if got := FindPeaks(nil, 0, 0); len(got) != 0 {
		t.Errorf("expected no peaks for empty input, got %v", got)
	}
	flat := []float64{1, 1, 1, 1, 1}
	if got := FindPeaks(flat, 0, 0); len(got) != 0 {
		t.Errorf("expected no peaks for flat input, got %v", got)
	}
}
