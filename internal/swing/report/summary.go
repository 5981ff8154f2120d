package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fairway-data/swing.report/internal/swing/review"
)

// BatchSummary builds the end-of-run summary text. The contact count is
// included once any contact result was added, even when zero contacts were
// found, so a contact-enabled run is distinguishable from a disabled one.
func (w *Writer) BatchSummary(dataset string, problematic []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s: %d total swings across %d videos", dataset, w.totalSwings, w.videos)
	if w.sawContacts {
		fmt.Fprintf(&b, ", %d contacts", w.totalContacts)
	}
	if len(problematic) > 0 {
		fmt.Fprintf(&b, "\nProblematic: %s", strings.Join(problematic, ", "))
	}
	return b.String()
}

// ProblemReport collects flagged videos in processing order for the
// problems/summary.txt file.
type ProblemReport struct {
	order []string
	flags map[string][]review.Flag
}

// NewProblemReport returns an empty problem report.
func NewProblemReport() *ProblemReport {
	return &ProblemReport{flags: make(map[string][]review.Flag)}
}

// Add records the flags for a video. Videos with no flags are ignored.
func (p *ProblemReport) Add(video string, flags []review.Flag) {
	if len(flags) == 0 {
		return
	}
	if _, seen := p.flags[video]; !seen {
		p.order = append(p.order, video)
	}
	p.flags[video] = append(p.flags[video], flags...)
}

// Empty reports whether no video has been flagged.
func (p *ProblemReport) Empty() bool { return len(p.order) == 0 }

// Videos returns the flagged video names in the order they were added.
func (p *ProblemReport) Videos() []string {
	return append([]string(nil), p.order...)
}

// WriteSummary writes summary.txt into dir, one block per flagged video
// with an indented line per flag.
func (p *ProblemReport) WriteSummary(dir string) error {
	var b strings.Builder
	for _, video := range p.order {
		fmt.Fprintf(&b, "%s:\n", video)
		for _, f := range p.flags[video] {
			fmt.Fprintf(&b, "  %s: %s\n", f.Label(), f.Reason)
		}
		b.WriteString("\n")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "summary.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
