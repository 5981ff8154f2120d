// Package report writes batch detection outputs: the CSV exports, the
// problem summary file, and the end-of-run summary text.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/units"
)

// Column orders for the three export files.
var (
	backswingColumns = []string{"video", "swing_num", "backswing_frame", "backswing_time_s", "xy_signal", "fps"}
	contactColumns   = []string{"video", "swing_num", "contact_frame", "contact_time_s", "xy_signal", "fps"}
	durationColumns  = []string{"video", "swing_num", "backswing_frame", "contact_frame", "downswing_frames", "downswing_time_s", "fps"}
)

// Writer accumulates detection rows across a batch run and writes the CSV
// exports on Flush. Each Writer carries a unique run ID so log lines from
// concurrent runs can be told apart.
type Writer struct {
	runID string

	backswings [][]string
	contacts   [][]string
	durations  [][]string

	videos        int
	totalSwings   int
	totalContacts int
	sawContacts   bool
}

// NewWriter returns an empty Writer with a fresh run ID.
func NewWriter() *Writer {
	return &Writer{runID: uuid.NewString()}
}

// RunID returns the unique identifier for this batch run.
func (w *Writer) RunID() string { return w.runID }

// AddDetection appends one backswing row per detected swing and counts the
// video toward the batch totals.
func (w *Writer) AddDetection(res *swing.DetectionResult) {
	w.videos++
	w.totalSwings += res.NumSwings()
	for i, bf := range res.PeakFrames {
		w.backswings = append(w.backswings, []string{
			res.Name,
			strconv.Itoa(i + 1),
			strconv.Itoa(bf),
			fmt.Sprintf("%.2f", units.FrameToSeconds(bf, res.FPS)),
			fmt.Sprintf("%.1f", res.Smoothed[bf]),
			fmt.Sprintf("%.2f", res.FPS),
		})
	}
}

// AddContacts appends one contact row per detected contact plus a paired
// downswing-duration row per matched backswing/contact pair. Contacts
// beyond the number of backswings (or vice versa) produce no duration row.
func (w *Writer) AddContacts(cr *swing.ContactResult) {
	br := cr.Backswing
	w.sawContacts = true
	w.totalContacts += cr.NumContacts()
	for i, cf := range cr.ContactFrames {
		w.contacts = append(w.contacts, []string{
			cr.Name,
			strconv.Itoa(i + 1),
			strconv.Itoa(cf),
			fmt.Sprintf("%.2f", units.FrameToSeconds(cf, br.FPS)),
			fmt.Sprintf("%.1f", cr.Smoothed[cf]),
			fmt.Sprintf("%.2f", br.FPS),
		})
	}
	n := min(br.NumSwings(), cr.NumContacts())
	for i := 0; i < n; i++ {
		bf, cf := br.PeakFrames[i], cr.ContactFrames[i]
		w.durations = append(w.durations, []string{
			cr.Name,
			strconv.Itoa(i + 1),
			strconv.Itoa(bf),
			strconv.Itoa(cf),
			strconv.Itoa(cf - bf),
			fmt.Sprintf("%.3f", units.FrameGapSeconds(bf, cf, br.FPS)),
			fmt.Sprintf("%.2f", br.FPS),
		})
	}
}

// Flush writes the accumulated rows into dir. The backswing file is always
// written, header included; contact and duration files only when they have
// rows.
func (w *Writer) Flush(dir string) error {
	if err := writeCSV(filepath.Join(dir, "backswing_detections.csv"), backswingColumns, w.backswings); err != nil {
		return err
	}
	if len(w.contacts) > 0 {
		if err := writeCSV(filepath.Join(dir, "contact_detections.csv"), contactColumns, w.contacts); err != nil {
			return err
		}
	}
	if len(w.durations) > 0 {
		if err := writeCSV(filepath.Join(dir, "downswing_durations.csv"), durationColumns, w.durations); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	swing.Diagf("CSV: %s (%d rows)", path, len(rows))
	return nil
}
