package visualize

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fairway-data/swing.report/internal/swing"
)

// maxChartPoints caps the rendered series length; longer signals are
// downsampled by stride. Detected frames are always kept so their markers
// land on real x-axis categories.
const maxChartPoints = 4000

// MakeInteractiveChart writes a self-contained HTML chart of the swing
// signal with zoom and per-frame tooltips. Backswing tops are drawn as
// downward triangles, contacts as upward ones.
func MakeInteractiveChart(res *swing.DetectionResult, cr *swing.ContactResult, outPath string) error {
	if len(res.Combined) == 0 {
		return fmt.Errorf("no signal to chart for %s", res.Name)
	}

	title := res.Name + " – Backswing"
	var contacts []int
	sm := res.Smoothed
	if cr != nil {
		title += " & Contact"
		contacts = cr.ContactFrames
		sm = cr.Smoothed
	}

	frames := sampledFrames(len(res.Combined), res.PeakFrames, contacts)
	x := make([]string, len(frames))
	rawData := make([]opts.LineData, len(frames))
	smData := make([]opts.LineData, len(frames))
	for i, f := range frames {
		x[i] = strconv.Itoa(f)
		rawData[i] = opts.LineData{Value: res.Combined[f]}
		smData[i] = opts.LineData{Value: sm[f]}
	}

	subtitle := fmt.Sprintf("fps=%.2f frames=%d swings=%d", res.FPS, res.TotalFrames, res.NumSwings())
	if cr != nil {
		subtitle += fmt.Sprintf(" contacts=%d", cr.NumContacts())
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: res.Name + " swing signal", Theme: "dark", Width: "1400px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Arc position x+y", NameLocation: "middle", NameGap: 45}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	line.SetXAxis(x).
		AddSeries("Raw (x+y)", rawData,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}),
		).
		AddSeries("Smoothed", smData,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#4682b4"}),
		)

	if markers := markerSeries(res.PeakFrames, sm, 180); len(markers) > 0 {
		sc := charts.NewScatter()
		sc.AddSeries("Backswing top", markers, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}))
		line.Overlap(sc)
	}
	if markers := markerSeries(contacts, sm, 0); len(markers) > 0 {
		sc := charts.NewScatter()
		sc.AddSeries("Contact", markers, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#4caf50"}))
		line.Overlap(sc)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create chart %s: %w", outPath, err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		return fmt.Errorf("render chart %s: %w", outPath, err)
	}
	swing.Diagf("chart: wrote %s (%d points)", outPath, len(frames))
	return nil
}

// sampledFrames returns the frame indices to plot: every stride-th frame
// plus all detected frames, sorted and de-duplicated.
func sampledFrames(n int, peaks, contacts []int) []int {
	stride := 1
	if n > maxChartPoints {
		stride = int(math.Ceil(float64(n) / float64(maxChartPoints)))
	}

	keep := make(map[int]struct{}, n/stride+len(peaks)+len(contacts)+2)
	for i := 0; i < n; i += stride {
		keep[i] = struct{}{}
	}
	keep[n-1] = struct{}{}
	for _, f := range peaks {
		if f >= 0 && f < n {
			keep[f] = struct{}{}
		}
	}
	for _, f := range contacts {
		if f >= 0 && f < n {
			keep[f] = struct{}{}
		}
	}

	frames := make([]int, 0, len(keep))
	for f := range keep {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// markerSeries builds triangle markers at the given frames; rotate 180
// points the triangle downward.
func markerSeries(frames []int, sm []float64, rotate int) []opts.ScatterData {
	var data []opts.ScatterData
	for _, f := range frames {
		if f < 0 || f >= len(sm) {
			continue
		}
		data = append(data, opts.ScatterData{
			Value:        []interface{}{strconv.Itoa(f), sm[f]},
			Symbol:       "triangle",
			SymbolSize:   14,
			SymbolRotate: rotate,
		})
	}
	return data
}
