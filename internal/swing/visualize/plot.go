package visualize

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/units"
)

// MakeSignalPlot renders the raw and smoothed arc signal over time with
// detected keyframes marked, and returns the written PNG path. When cr is
// non-nil the contact-stage smoothing is plotted and contact markers are
// added. The y-axis is inverted so higher hands read as higher on the page
// (keypoint y grows downward in image space).
func MakeSignalPlot(res *swing.DetectionResult, cr *swing.ContactResult, outDir string) (string, error) {
	if len(res.Combined) == 0 {
		return "", fmt.Errorf("no signal to plot for %s", res.Name)
	}

	title := res.Name + " – Backswing"
	suffix := "_signal.png"
	sm := res.Smoothed
	if cr != nil {
		title += " & Contact"
		suffix = "_contact_signal.png"
		sm = cr.Smoothed
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Arc position x+y (inverted)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	raw, err := plotter.NewLine(signalXYs(res.Combined, res.FPS))
	if err != nil {
		return "", err
	}
	raw.Color = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	raw.Width = vg.Points(0.5)
	p.Add(raw)
	p.Legend.Add("Raw (x+y)", raw)

	smLine, err := plotter.NewLine(signalXYs(sm, res.FPS))
	if err != nil {
		return "", err
	}
	smLine.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	smLine.Width = vg.Points(1.2)
	p.Add(smLine)
	p.Legend.Add("Smoothed", smLine)

	lo, hi := signalRange(res.Combined)

	red := color.RGBA{R: 255, A: 255}
	if err := addMarkers(p, res.PeakFrames, sm, res.FPS, lo, hi, "Backswing top",
		red, color.NRGBA{R: 255, A: 64}, true); err != nil {
		return "", err
	}

	if cr != nil && len(cr.ContactFrames) > 0 {
		green := color.RGBA{G: 128, A: 255}
		if err := addMarkers(p, cr.ContactFrames, sm, res.FPS, lo, hi, "Contact",
			green, color.NRGBA{G: 255, A: 64}, false); err != nil {
			return "", err
		}
		if err := addConnectors(p, res.PeakFrames, cr.ContactFrames, sm, res.FPS); err != nil {
			return "", err
		}
	}

	p.Legend.Top = false
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = 10

	out := filepath.Join(outDir, res.Name+suffix)
	if err := p.Save(16*vg.Inch, 5*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save signal plot: %w", err)
	}
	swing.Diagf("plot: wrote %s", out)
	return out, nil
}

// addMarkers draws filled triangle glyphs at the given frames plus a faint
// vertical line per frame; withLabels adds the frame number next to each.
func addMarkers(p *plot.Plot, frames []int, sm []float64, fps, lo, hi float64,
	name string, c color.Color, vlineColor color.Color, withLabels bool) error {
	marks := make(plotter.XYs, 0, len(frames))
	names := make([]string, 0, len(frames))
	for _, f := range frames {
		if f < 0 || f >= len(sm) {
			continue
		}
		x := units.FrameToSeconds(f, fps)
		marks = append(marks, plotter.XY{X: x, Y: sm[f]})
		names = append(names, strconv.Itoa(f))

		vl, err := plotter.NewLine(plotter.XYs{{X: x, Y: lo}, {X: x, Y: hi}})
		if err != nil {
			return err
		}
		vl.Color = vlineColor
		vl.Width = vg.Points(1)
		p.Add(vl)
	}
	if len(marks) == 0 {
		return nil
	}

	sc, err := plotter.NewScatter(marks)
	if err != nil {
		return err
	}
	sc.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(5), Shape: draw.PyramidGlyph{}}
	p.Add(sc)
	p.Legend.Add(name, sc)

	if withLabels {
		lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: marks, Labels: names})
		if err != nil {
			return err
		}
		p.Add(lbls)
	}
	return nil
}

// addConnectors draws faint yellow segments pairing each backswing top with
// its contact, positionally up to the shorter list.
func addConnectors(p *plot.Plot, backswings, contacts []int, sm []float64, fps float64) error {
	n := min(len(backswings), len(contacts))
	for i := 0; i < n; i++ {
		b, c := backswings[i], contacts[i]
		if b < 0 || b >= len(sm) || c < 0 || c >= len(sm) {
			continue
		}
		ln, err := plotter.NewLine(plotter.XYs{
			{X: units.FrameToSeconds(b, fps), Y: sm[b]},
			{X: units.FrameToSeconds(c, fps), Y: sm[c]},
		})
		if err != nil {
			return err
		}
		ln.Color = color.NRGBA{R: 255, G: 255, A: 102}
		ln.Width = vg.Points(1)
		p.Add(ln)
	}
	return nil
}

func signalXYs(vals []float64, fps float64) plotter.XYs {
	pts := make(plotter.XYs, len(vals))
	for i, v := range vals {
		pts[i] = plotter.XY{X: units.FrameToSeconds(i, fps), Y: v}
	}
	return pts
}

func signalRange(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
