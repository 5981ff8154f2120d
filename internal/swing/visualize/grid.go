package visualize

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/fairway-data/swing.report/internal/swing"
	"github.com/fairway-data/swing.report/internal/swing/keypoints"
	"github.com/fairway-data/swing.report/internal/video"
)

// Grid layout constants. Cells keep the source aspect ratio at a fixed
// width; captions sit in a strip above each cell.
const (
	gridCols    = 4
	gridCellW   = 480
	gridTitleH  = 70
	gridCapH    = 44
	gridCellPad = 8
)

var gridTextColor = color.RGBA{R: 235, G: 235, B: 235, A: 255}

// MakeGrid renders the given frames from a video as a captioned 4-column
// PNG grid, each frame overlaid with its pose skeleton. No file is
// written when frames is empty.
func MakeGrid(frames []int, store *keypoints.Store, videoPath string, fps float64, title, outPath string) error {
	if len(frames) == 0 {
		return nil
	}

	r, err := video.Open(videoPath)
	if err != nil {
		return err
	}
	defer r.Close()

	meta := r.Meta()
	if meta.Width <= 0 || meta.Height <= 0 {
		return fmt.Errorf("video %s reports no frame geometry", videoPath)
	}
	cellH := gridCellW * meta.Height / meta.Width

	rows := (len(frames) + gridCols - 1) / gridCols
	boxW := gridCellW + 2*gridCellPad
	boxH := gridCapH + cellH + 2*gridCellPad
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		gridTitleH+rows*boxH, gridCols*boxW, gocv.MatTypeCV8UC3)
	defer canvas.Close()

	drawCentered(&canvas, title, gridTitleH-24, 1.2, 2)

	for i, pf := range frames {
		col, row := i%gridCols, i/gridCols
		x0 := col*boxW + gridCellPad
		y0 := gridTitleH + row*boxH + gridCellPad

		caption := captionFor(pf, fps)
		mat, err := r.ReadFrame(pf)
		if err != nil {
			caption = fmt.Sprintf("Frame %d (read failed)", pf)
			swing.Diagf("grid: %v", err)
		} else {
			if store != nil && pf < store.Len() {
				DrawSkeleton(&mat, store.Sample(pf))
			}
			cell := gocv.NewMat()
			gocv.Resize(mat, &cell, image.Pt(gridCellW, cellH), 0, 0, gocv.InterpolationArea)
			roi := canvas.Region(image.Rect(x0, y0+gridCapH, x0+gridCellW, y0+gridCapH+cellH))
			cell.CopyTo(&roi)
			roi.Close()
			cell.Close()
			mat.Close()
		}

		gocv.PutText(&canvas, caption, image.Pt(x0, y0+gridCapH-14),
			gocv.FontHersheySimplex, 0.7, gridTextColor, 2)
	}

	if ok := gocv.IMWrite(outPath, canvas); !ok {
		return fmt.Errorf("write grid %s", outPath)
	}
	swing.Diagf("grid: wrote %s (%d frames)", outPath, len(frames))
	return nil
}

// drawCentered draws text horizontally centered on the canvas at baseline y.
func drawCentered(canvas *gocv.Mat, text string, y int, scale float64, thickness int) {
	sz := gocv.GetTextSize(text, gocv.FontHersheySimplex, scale, thickness)
	x := max(0, (canvas.Cols()-sz.X)/2)
	gocv.PutText(canvas, text, image.Pt(x, y), gocv.FontHersheySimplex, scale, gridTextColor, thickness)
}
