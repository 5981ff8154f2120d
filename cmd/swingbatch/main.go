// Command swingbatch runs backswing and contact detection across a dataset
// of golf swing videos, writing per-video review artifacts, problem flags,
// and batch summaries.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/fairway-data/swing.report/internal/notify"
	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/swing/report"
	"github.com/fairway-data/swing.report/internal/version"
)

func main() {
	out := flag.String("out", "", "Output directory (defaults to <dataset>_testing)")
	contact := flag.Bool("contact", false, "Also detect ball contact after each backswing")
	csvOut := flag.Bool("csv", false, "Export batch CSV summaries")
	clips := flag.Bool("clips", true, "Extract short clips around each detected frame")
	pushover := flag.Bool("pushover", true, "Send a Pushover notification with the batch summary")
	skipList := flag.String("skip", "", "Comma-separated video names to skip")
	tuningPath := flag.String("tuning", "", "JSON tuning overlay applied on top of the default configuration")
	workers := flag.Int("workers", 1, "Videos processed in parallel")
	verbose := flag.Bool("v", false, "Log diagnostics to stderr")
	trace := flag.Bool("vv", false, "Log diagnostics and per-frame tracing to stderr")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("swingbatch " + version.String())
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: swingbatch [flags] <dataset-dir>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	writers := swing.LogWriters{Ops: os.Stderr}
	if *verbose || *trace {
		writers.Diag = os.Stderr
	}
	if *trace {
		writers.Trace = os.Stderr
	}
	swing.SetLogWriters(writers)

	cfg := swing.DefaultConfig()
	if *tuningPath != "" {
		t, err := swing.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
		cfg = t.Apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	datasetDir, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to resolve dataset dir: %v", err)
	}
	datasetName := filepath.Base(datasetDir)
	outRoot := *out
	if outRoot == "" {
		outRoot = datasetName + "_testing"
	}
	if outRoot, err = filepath.Abs(outRoot); err != nil {
		log.Fatalf("Failed to resolve output dir: %v", err)
	}
	if err := os.MkdirAll(outRoot, 0o755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	jobs, err := discoverVideos(datasetDir, splitSkip(*skipList))
	if err != nil {
		log.Fatalf("Failed to discover videos: %v", err)
	}
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name
	}
	fmt.Printf("Found %d videos: %s\n", len(jobs), strings.Join(names, ", "))
	if len(jobs) == 0 {
		return
	}

	var push *notify.Pushover
	if *pushover {
		var ok bool
		if push, ok = notify.FromEnv(); !ok {
			fmt.Println("Warning: pushover not configured, disabling notifications")
		}
	}

	writer := report.NewWriter()
	swing.Opsf("batch %s started: %d videos, workers=%d, run=%s", datasetName, len(jobs), *workers, writer.RunID())

	opt := batchOptions{Contact: *contact, Clips: *clips}
	outputs := make([]videoOutput, len(jobs))
	bar := pb.StartNew(len(jobs))
	sem := make(chan struct{}, max(1, *workers))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, job videoJob) {
			defer wg.Done()
			defer bar.Increment()
			defer func() { <-sem }()
			outputs[i] = processVideo(job, filepath.Join(outRoot, job.Name), cfg, opt)
		}(i, job)
	}
	wg.Wait()
	bar.Finish()

	problems := report.NewProblemReport()
	failed := 0
	for _, o := range outputs {
		if o.Err != nil {
			failed++
			fmt.Printf("%s: error: %v\n", o.Job.Name, o.Err)
			swing.Opsf("%s: %v", o.Job.Name, o.Err)
			continue
		}
		if len(o.Flags) > 0 {
			problems.Add(o.Job.Name, o.Flags)
			if err := copyProblemArtifacts(o.Job.Name, filepath.Join(outRoot, o.Job.Name), filepath.Join(outRoot, "problems")); err != nil {
				swing.Opsf("problems copy %s: %v", o.Job.Name, err)
			}
		}
		writer.AddDetection(o.Result)
		if o.Contacts != nil {
			writer.AddContacts(o.Contacts)
		}
		fmt.Println(o.Line)
	}

	txt := writer.BatchSummary(datasetName, problems.Videos())
	if !problems.Empty() {
		if err := problems.WriteSummary(filepath.Join(outRoot, "problems")); err != nil {
			swing.Opsf("write problem summary: %v", err)
		}
	}
	fmt.Println(txt)

	if push != nil {
		if err := push.Notify(txt, datasetName+" detection"); err != nil {
			fmt.Printf("Pushover failed: %v\n", err)
		}
	}
	if *csvOut {
		if err := writer.Flush(outRoot); err != nil {
			log.Fatalf("Failed to export CSVs: %v", err)
		}
	}
	fmt.Printf("All outputs in: %s\n", outRoot)
	if failed > 0 {
		os.Exit(1)
	}
}

// splitSkip parses a comma-separated skip list, dropping empty entries.
func splitSkip(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
