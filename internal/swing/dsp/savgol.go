// Package dsp provides the signal-processing primitives behind swing
// detection: Savitzky-Golay smoothing, peak finding, and robust statistics
// over plain float64 slices.
package dsp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SavGol smooths x with a Savitzky-Golay filter: each interior sample is
// replaced by the centre value of a least-squares polynomial fit over a
// sliding window. The first and last half-window samples are filled by
// fitting a polynomial to the first/last full window and evaluating it at
// those positions, so the output carries no startup transient and has the
// same length as the input.
//
// window must be odd and positive, poly < window, and len(x) >= window.
func SavGol(x []float64, window, poly int) ([]float64, error) {
	if window <= 0 || window%2 == 0 {
		return nil, fmt.Errorf("savgol: window must be positive and odd, got %d", window)
	}
	if poly < 0 || poly >= window {
		return nil, fmt.Errorf("savgol: poly order %d must be in [0, window %d)", poly, window)
	}
	if len(x) < window {
		return nil, fmt.Errorf("savgol: signal length %d shorter than window %d", len(x), window)
	}

	coeffs, err := centreCoeffs(window, poly)
	if err != nil {
		return nil, err
	}

	half := window / 2
	out := make([]float64, len(x))
	for t := half; t < len(x)-half; t++ {
		var v float64
		for i, c := range coeffs {
			v += c * x[t-half+i]
		}
		out[t] = v
	}

	if err := fitEdge(x, out, 0, window, 0, half, poly); err != nil {
		return nil, err
	}
	if err := fitEdge(x, out, len(x)-window, len(x), len(x)-half, len(x), poly); err != nil {
		return nil, err
	}
	return out, nil
}

// centreCoeffs returns the convolution weights that evaluate the window's
// least-squares polynomial at its centre. With the Vandermonde matrix A
// over offsets [-half, half], the weight vector is A (AᵀA)⁻¹ e₀.
func centreCoeffs(window, poly int) ([]float64, error) {
	half := window / 2
	a := mat.NewDense(window, poly+1, nil)
	for i := 0; i < window; i++ {
		p := 1.0
		for j := 0; j <= poly; j++ {
			a.Set(i, j, p)
			p *= float64(i - half)
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)
	e0 := mat.NewVecDense(poly+1, nil)
	e0.SetVec(0, 1)

	var z mat.VecDense
	if err := z.SolveVec(&ata, e0); err != nil {
		return nil, fmt.Errorf("savgol: normal equations singular for window=%d poly=%d: %w", window, poly, err)
	}
	var c mat.VecDense
	c.MulVec(a, &z)

	out := make([]float64, window)
	for i := range out {
		out[i] = c.AtVec(i)
	}
	return out, nil
}

// fitEdge least-squares fits a poly-order polynomial to x[winStart:winStop]
// and writes its values into out[interpStart:interpStop]. Abscissae are
// local window offsets to keep the system well conditioned.
func fitEdge(x, out []float64, winStart, winStop, interpStart, interpStop, poly int) error {
	w := winStop - winStart
	v := mat.NewDense(w, poly+1, nil)
	y := mat.NewVecDense(w, nil)
	for i := 0; i < w; i++ {
		p := 1.0
		for j := 0; j <= poly; j++ {
			v.Set(i, j, p)
			p *= float64(i)
		}
		y.SetVec(i, x[winStart+i])
	}

	var c mat.VecDense
	if err := c.SolveVec(v, y); err != nil {
		return fmt.Errorf("savgol: edge fit failed: %w", err)
	}

	for t := interpStart; t < interpStop; t++ {
		u := float64(t - winStart)
		val := 0.0
		p := 1.0
		for j := 0; j <= poly; j++ {
			val += c.AtVec(j) * p
			p *= u
		}
		out[t] = val
	}
	return nil
}
