// Package visualize renders review artifacts for detected keyframes:
// skeleton frame grids, signal plots, interactive charts, and short clips.
package visualize

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/fairway-data/swing.report/internal/swing/keypoints"
)

// minDrawScore is the confidence floor below which joints and limbs are
// not drawn.
const minDrawScore = 0.1

// limbColors maps skeleton edges to their draw color: head and face grey,
// torso and hips green, arms cyan/yellow, legs blue/red.
var limbColors = map[[2]int]color.RGBA{
	{keypoints.Nose, keypoints.LeftEye}:      {R: 200, G: 200, B: 200, A: 255},
	{keypoints.Nose, keypoints.RightEye}:     {R: 200, G: 200, B: 200, A: 255},
	{keypoints.LeftEye, keypoints.LeftEar}:   {R: 200, G: 200, B: 200, A: 255},
	{keypoints.RightEye, keypoints.RightEar}: {R: 200, G: 200, B: 200, A: 255},

	{keypoints.LeftShoulder, keypoints.RightShoulder}: {G: 200, A: 255},
	{keypoints.LeftShoulder, keypoints.LeftHip}:       {G: 200, A: 255},
	{keypoints.RightShoulder, keypoints.RightHip}:     {G: 200, A: 255},
	{keypoints.LeftHip, keypoints.RightHip}:           {G: 200, A: 255},

	{keypoints.LeftShoulder, keypoints.LeftElbow}: {G: 255, B: 255, A: 255},
	{keypoints.LeftElbow, keypoints.LeftWrist}:    {G: 255, B: 255, A: 255},

	{keypoints.RightShoulder, keypoints.RightElbow}: {R: 255, G: 255, A: 255},
	{keypoints.RightElbow, keypoints.RightWrist}:    {R: 255, G: 255, A: 255},

	{keypoints.LeftHip, keypoints.LeftKnee}:   {R: 100, G: 100, B: 255, A: 255},
	{keypoints.LeftKnee, keypoints.LeftAnkle}: {R: 100, G: 100, B: 255, A: 255},

	{keypoints.RightHip, keypoints.RightKnee}:   {R: 255, G: 100, B: 100, A: 255},
	{keypoints.RightKnee, keypoints.RightAnkle}: {R: 255, G: 100, B: 100, A: 255},
}

var (
	wristColor = color.RGBA{R: 255, B: 255, A: 255}
	jointColor = color.RGBA{G: 255, A: 255}
	greyColor  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// DrawSkeleton draws the COCO-17 pose overlay onto img in place. Joints
// with confidence above minDrawScore are drawn; the wrists get large
// magenta circles labelled "L"/"R" since they carry the swing signal.
func DrawSkeleton(img *gocv.Mat, sample keypoints.FrameSample) {
	for _, edge := range keypoints.Skeleton {
		a, b := edge[0], edge[1]
		if sample.Scores[a] <= minDrawScore || sample.Scores[b] <= minDrawScore {
			continue
		}
		c, ok := limbColors[edge]
		if !ok {
			c = greyColor
		}
		gocv.Line(img, jointPoint(sample, a), jointPoint(sample, b), c, 2)
	}

	for j := 0; j < keypoints.NumJoints; j++ {
		if sample.Scores[j] <= minDrawScore {
			continue
		}
		c, r := jointColor, 4
		if j == keypoints.LeftWrist || j == keypoints.RightWrist {
			c, r = wristColor, 12
		}
		gocv.Circle(img, jointPoint(sample, j), r, c, -1)
	}

	for _, w := range []struct {
		joint int
		label string
	}{{keypoints.LeftWrist, "L"}, {keypoints.RightWrist, "R"}} {
		if sample.Scores[w.joint] <= minDrawScore {
			continue
		}
		pt := jointPoint(sample, w.joint)
		org := image.Pt(pt.X+15, pt.Y-10)
		gocv.PutText(img, w.label, org, gocv.FontHersheySimplex, 1.0, wristColor, 2)
	}
}

func jointPoint(sample keypoints.FrameSample, joint int) image.Point {
	x, y := sample.Joints[joint][0], sample.Joints[joint][1]
	return image.Pt(int(x), int(y))
}

// captionFor formats the per-cell caption shown above each grid frame.
func captionFor(frame int, fps float64) string {
	if fps <= 0 {
		return fmt.Sprintf("Frame %d", frame)
	}
	return fmt.Sprintf("Frame %d  (%.1fs)", frame, float64(frame)/fps)
}
