package swing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/fairway-data/swing.report/internal/swing/dsp"
)

// DetectContactPoints finds the ball-contact frame following each
// backswing top. A light smoothing pass preserves the sharp spike the
// wrists make at impact, then each backswing opens a short forward search
// window whose maximum is the contact frame. Backswings whose window
// starts at or past the end of the clip produce no contact, so the result
// can be shorter than the input; pairing is positional.
func DetectContactPoints(backswings []int, combined []float64, frameCount int, cfg Config) ([]int, []float64, error) {
	smoothed, err := dsp.SavGol(combined, cfg.ContactSavgolWindow, cfg.ContactSavgolPoly)
	if err != nil {
		return nil, nil, fmt.Errorf("contact smoothing: %w", err)
	}

	var contacts []int
	for _, bf := range backswings {
		s := bf + cfg.ContactSearchMin
		if s >= frameCount {
			continue
		}
		e := min(bf+cfg.ContactSearchMax, frameCount-1)
		if e > len(smoothed)-1 {
			e = len(smoothed) - 1
		}
		if s > e {
			continue
		}
		contacts = append(contacts, s+floats.MaxIdx(smoothed[s:e+1]))
	}
	return contacts, smoothed, nil
}
