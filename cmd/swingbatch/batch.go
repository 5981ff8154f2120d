package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fairway-data/swing.report/internal/fsutil"
	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/swing/keypoints"
	"github.com/fairway-data/swing.report/internal/swing/review"
	"github.com/fairway-data/swing.report/internal/swing/visualize"
	"github.com/fairway-data/swing.report/internal/video"
)

// videoJob is one discovered dataset entry: a video at the dataset root
// plus its keypoint file nested under <name>/keypoints/.
type videoJob struct {
	Name         string
	VideoPath    string
	KeypointPath string
}

// batchOptions controls the per-video work beyond backswing detection.
type batchOptions struct {
	Contact bool
	Clips   bool
}

// videoOutput collects everything the batch loop needs once one video has
// been processed.
type videoOutput struct {
	Job      videoJob
	Result   *swing.DetectionResult
	Contacts *swing.ContactResult
	Flags    []review.Flag
	Line     string
	Err      error
}

// discoverVideos scans a dataset directory for video/keypoint pairs laid
// out as <dir>/<name>.MOV (or .mp4) plus <dir>/<name>/keypoints/<name>.json,
// sorted by name. Names in skip are excluded.
func discoverVideos(dir string, skip []string) ([]videoJob, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", dir, err)
	}
	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipSet[s] = struct{}{}
	}

	var jobs []videoJob
	for _, e := range entries {
		name := e.Name()
		if _, ok := skipSet[name]; ok {
			continue
		}
		kp := filepath.Join(dir, name, "keypoints", name+".json")
		mov := filepath.Join(dir, name+".MOV")
		if !fsutil.IsFile(mov) {
			mov = filepath.Join(dir, name+".mp4")
		}
		if fsutil.IsFile(kp) && fsutil.IsFile(mov) {
			jobs = append(jobs, videoJob{Name: name, VideoPath: mov, KeypointPath: kp})
		}
	}
	return jobs, nil
}

// processVideo runs detection on one video and writes its review
// artifacts into outDir.
func processVideo(job videoJob, outDir string, cfg swing.Config, opt batchOptions) videoOutput {
	out := videoOutput{Job: job}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		out.Err = fmt.Errorf("create output dir %s: %w", outDir, err)
		return out
	}

	store, err := keypoints.Load(job.KeypointPath)
	if err != nil {
		out.Err = err
		return out
	}
	meta, err := video.ReadMeta(job.VideoPath)
	if err != nil {
		out.Err = err
		return out
	}

	res, err := swing.DetectBackswings(store, swing.Clip{
		Name:        job.Name,
		Path:        job.VideoPath,
		FPS:         meta.FPS,
		TotalFrames: meta.TotalFrames,
	}, cfg)
	if err != nil {
		out.Err = err
		return out
	}
	out.Result = res

	if opt.Contact {
		ct, err := swing.DetectContacts(res, cfg)
		if err != nil {
			out.Err = err
			return out
		}
		out.Contacts = ct
	}

	if err := writeArtifacts(job.Name, outDir, store, res, out.Contacts, opt); err != nil {
		out.Err = err
		return out
	}

	out.Flags = review.FlagDetection(res, cfg)
	if out.Contacts != nil {
		out.Flags = append(out.Flags, review.FlagDownswings(out.Contacts, cfg)...)
	}
	out.Line = statusLine(job.Name, res, out.Contacts, len(out.Flags) > 0)
	return out
}

// writeArtifacts renders the grids, plots, interactive chart, and optional
// clips for one processed video.
func writeArtifacts(name, outDir string, store *keypoints.Store, res *swing.DetectionResult, ct *swing.ContactResult, opt batchOptions) error {
	if err := visualize.MakeGrid(res.PeakFrames, store, res.VideoPath, res.FPS,
		name+" – Top of Backswing", filepath.Join(outDir, name+"_backswing_grid.png")); err != nil {
		return err
	}
	if _, err := visualize.MakeSignalPlot(res, nil, outDir); err != nil {
		return err
	}
	if err := visualize.MakeInteractiveChart(res, ct, filepath.Join(outDir, name+"_signal.html")); err != nil {
		return err
	}

	if ct != nil {
		if err := visualize.MakeGrid(ct.ContactFrames, store, res.VideoPath, res.FPS,
			name+" – Contact Points", filepath.Join(outDir, name+"_contact_grid.png")); err != nil {
			return err
		}
		if _, err := visualize.MakeSignalPlot(res, ct, outDir); err != nil {
			return err
		}
	}

	if opt.Clips {
		if _, err := visualize.ExtractClips(res.PeakFrames, res.VideoPath, res.FPS, outDir, name+"_swing"); err != nil {
			return err
		}
		if ct != nil {
			if _, err := visualize.ExtractClips(ct.ContactFrames, res.VideoPath, res.FPS, outDir, name+"_contact"); err != nil {
				return err
			}
		}
	}
	return nil
}

// statusLine formats the one-line per-video outcome: swing and contact
// counts, the names of any filters that fired, and a problems marker.
func statusLine(name string, res *swing.DetectionResult, ct *swing.ContactResult, problems bool) string {
	line := fmt.Sprintf("%s: %d swings", name, res.NumSwings())
	if ct != nil {
		line += fmt.Sprintf(", %d contacts", ct.NumContacts())
	}
	if len(res.FilterLog) > 0 {
		names := make([]string, len(res.FilterLog))
		for i, m := range res.FilterLog {
			names[i] = strings.SplitN(m, ":", 2)[0]
		}
		line += fmt.Sprintf("  [filters: %s]", strings.Join(names, ", "))
	}
	if problems {
		line += " *** PROBLEMS ***"
	}
	return line
}

// problemSuffixes are the per-video artifacts copied into the shared
// problems directory for quick review.
var problemSuffixes = []string{"_backswing_grid.png", "_signal.png"}

// copyProblemArtifacts copies a flagged video's grid and signal plot into
// problemsDir. Artifacts that were never written are skipped.
func copyProblemArtifacts(name, vidOut, problemsDir string) error {
	if err := os.MkdirAll(problemsDir, 0o755); err != nil {
		return fmt.Errorf("create problems dir: %w", err)
	}
	for _, suffix := range problemSuffixes {
		src := filepath.Join(vidOut, name+suffix)
		if !fsutil.IsFile(src) {
			continue
		}
		if err := fsutil.CopyFile(src, filepath.Join(problemsDir, name+suffix)); err != nil {
			return err
		}
	}
	return nil
}
