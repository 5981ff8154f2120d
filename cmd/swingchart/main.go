// Command swingchart runs detection on a single video and renders an
// interactive HTML chart of its swing signal, printing the detected
// keyframes with timestamps.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/swing/keypoints"
	"github.com/fairway-data/swing.report/internal/swing/review"
	"github.com/fairway-data/swing.report/internal/swing/visualize"
	"github.com/fairway-data/swing.report/internal/units"
	"github.com/fairway-data/swing.report/internal/version"
	"github.com/fairway-data/swing.report/internal/video"
)

func main() {
	keypointPath := flag.String("keypoints", "", "Keypoint JSON file for the video")
	videoPath := flag.String("video", "", "Video file")
	contact := flag.Bool("contact", false, "Also detect ball contact after each backswing")
	tuningPath := flag.String("tuning", "", "JSON tuning overlay applied on top of the default configuration")
	out := flag.String("out", "", "Output HTML path (defaults to <video>_signal.html)")
	verbose := flag.Bool("v", false, "Log diagnostics to stderr")
	trace := flag.Bool("vv", false, "Log diagnostics and per-frame tracing to stderr")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("swingchart " + version.String())
		return
	}
	if *keypointPath == "" || *videoPath == "" {
		fmt.Fprintln(os.Stderr, "usage: swingchart -keypoints <file.json> -video <file.MOV> [flags]")
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

	store, err := keypoints.Load(*keypointPath)
	if err != nil {
		log.Fatalf("Failed to load keypoints: %v", err)
	}
	meta, err := video.ReadMeta(*videoPath)
	if err != nil {
		log.Fatalf("Failed to read video: %v", err)
	}

	name := strings.TrimSuffix(filepath.Base(*videoPath), filepath.Ext(*videoPath))
	res, err := swing.DetectBackswings(store, swing.Clip{
		Name:        name,
		Path:        *videoPath,
		FPS:         meta.FPS,
		TotalFrames: meta.TotalFrames,
	}, cfg)
	if err != nil {
		log.Fatalf("Detection failed: %v", err)
	}

	var ct *swing.ContactResult
	if *contact {
		if ct, err = swing.DetectContacts(res, cfg); err != nil {
			log.Fatalf("Contact detection failed: %v", err)
		}
	}

	printDetections(res, ct, cfg)

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(*videoPath, filepath.Ext(*videoPath)) + "_signal.html"
	}
	if err := visualize.MakeInteractiveChart(res, ct, outPath); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}
	fmt.Printf("Chart written to: %s\n", outPath)
}

// printDetections lists each keyframe with its timestamp, plus downswing
// spans when contacts were detected, and any review flags.
func printDetections(res *swing.DetectionResult, ct *swing.ContactResult, cfg swing.Config) {
	fmt.Printf("%s: %d swings", res.Name, res.NumSwings())
	if ct != nil {
		fmt.Printf(", %d contacts", ct.NumContacts())
	}
	fmt.Println()

	for i, pf := range res.PeakFrames {
		ts := units.FormatTimestamp(units.FrameToSeconds(pf, res.FPS))
		fmt.Printf("  Swing %d: frame %d (%s)\n", i+1, pf, ts)
		if ct != nil && i < len(ct.ContactFrames) {
			cf := ct.ContactFrames[i]
			cts := units.FormatTimestamp(units.FrameToSeconds(cf, res.FPS))
			gap := units.FrameGapSeconds(pf, cf, res.FPS)
			fmt.Printf("    Contact: frame %d (%s), downswing %d frames (%.3fs)\n", cf, cts, cf-pf, gap)
		}
	}

	flags := review.FlagDetection(res, cfg)
	if ct != nil {
		flags = append(flags, review.FlagDownswings(ct, cfg)...)
	}
	for _, f := range flags {
		fmt.Printf("  %s: %s\n", f.Label(), f.Reason)
	}
}
