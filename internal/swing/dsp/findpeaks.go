package dsp

import "sort"

// FindPeaks returns the indices of local maxima of x that survive two
// filters, applied in this order: peaks closer than distance frames to a
// taller surviving peak are suppressed, then peaks whose topographic
// prominence falls below prominence are dropped. Plateau maxima collapse
// to their midpoint. Indices are returned in ascending order.
func FindPeaks(x []float64, prominence float64, distance int) []int {
	peaks := localMaxima(x)
	if distance > 1 {
		peaks = selectByDistance(x, peaks, distance)
	}
	return selectByProminence(x, peaks, prominence)
}

// localMaxima scans for strict local maxima. A run of equal values bounded
// by smaller neighbours on both sides counts as one peak at the midpoint
// of the run (integer division biases left for even runs). First and last
// samples can never be maxima.
func localMaxima(x []float64) []int {
	var peaks []int
	i := 1
	last := len(x) - 1
	for i < last {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < last && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
			}
		}
		i++
	}
	return peaks
}

// selectByDistance keeps the tallest peaks first: walking candidates in
// descending height, each survivor silences any not-yet-processed peak
// strictly closer than distance on either side.
func selectByDistance(x []float64, peaks []int, distance int) []int {
	n := len(peaks)
	if n == 0 {
		return peaks
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps equal-height ties deterministic (earlier peak wins).
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] > x[peaks[order[b]]]
	})

	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	for _, j := range order {
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < n && peaks[k]-peaks[j] < distance; k++ {
			keep[k] = false
		}
	}

	out := peaks[:0:0]
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func selectByProminence(x []float64, peaks []int, prominence float64) []int {
	out := peaks[:0:0]
	for _, p := range peaks {
		if Prominence(x, p) >= prominence {
			out = append(out, p)
		}
	}
	return out
}

// Prominence measures how far a peak rises above its surroundings: from
// the peak, walk left and right while samples stay at or below the peak
// height, recording the lowest valley reached on each side; the prominence
// is the peak height minus the higher of the two valley floors.
func Prominence(x []float64, peak int) float64 {
	leftMin := x[peak]
	for i := peak - 1; i >= 0 && x[i] <= x[peak]; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}
	rightMin := x[peak]
	for i := peak + 1; i < len(x) && x[i] <= x[peak]; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return x[peak] - base
}
