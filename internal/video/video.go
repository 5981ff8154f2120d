// Package video is the gocv boundary: metadata reads, random-access frame
// decoding, and clip writing against real video files.
package video

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrFrameRead is returned when a frame cannot be decoded at the requested
// position. Grid rendering treats this as a per-cell failure and keeps going.
var ErrFrameRead = errors.New("failed to read frame")

// Meta describes a video file.
type Meta struct {
	FPS         float64
	TotalFrames int
	Width       int
	Height      int
}

// ReadMeta opens path just long enough to read its frame rate, frame count
// and geometry.
func ReadMeta(path string) (Meta, error) {
	r, err := Open(path)
	if err != nil {
		return Meta{}, err
	}
	defer r.Close()
	return r.Meta(), nil
}

// Reader provides random-access frame reads over a video file.
type Reader struct {
	capture *gocv.VideoCapture
	meta    Meta
}

// Open opens a video file for frame access.
func Open(path string) (*Reader, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	return &Reader{
		capture: capture,
		meta: Meta{
			FPS:         capture.Get(gocv.VideoCaptureFPS),
			TotalFrames: int(capture.Get(gocv.VideoCaptureFrameCount)),
			Width:       int(capture.Get(gocv.VideoCaptureFrameWidth)),
			Height:      int(capture.Get(gocv.VideoCaptureFrameHeight)),
		},
	}, nil
}

// Meta returns the metadata read at open time.
func (r *Reader) Meta() Meta {
	return r.meta
}

// Seek positions the reader at the given frame index, clamped to the valid
// range, and returns the clamped index.
func (r *Reader) Seek(frame int) int {
	clamped := frame
	if clamped > r.meta.TotalFrames-1 {
		clamped = r.meta.TotalFrames - 1
	}
	if clamped < 0 {
		clamped = 0
	}
	r.capture.Set(gocv.VideoCapturePosFrames, float64(clamped))
	return clamped
}

// Next decodes the frame at the current position into mat and advances.
// Returns false at end of stream or on decode failure.
func (r *Reader) Next(mat *gocv.Mat) bool {
	return r.capture.Read(mat) && !mat.Empty()
}

// ReadFrame seeks to the frame index and decodes it. The caller owns the
// returned Mat and must Close it.
func (r *Reader) ReadFrame(frame int) (gocv.Mat, error) {
	r.Seek(frame)
	mat := gocv.NewMat()
	if !r.Next(&mat) {
		mat.Close()
		return gocv.Mat{}, fmt.Errorf("%w at %d", ErrFrameRead, frame)
	}
	return mat, nil
}

// Close releases the underlying capture.
func (r *Reader) Close() error {
	return r.capture.Close()
}

// NewClipWriter creates an mp4v-encoded writer for short clip extraction.
// The caller must Close it to finalize the file.
func NewClipWriter(path string, fps float64, width, height int) (*gocv.VideoWriter, error) {
	w, err := gocv.VideoWriterFile(path, "mp4v", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open clip writer %s: %w", path, err)
	}
	return w, nil
}
