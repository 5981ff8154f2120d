// Package keypoints stores per-frame 2-D pose keypoints produced by the
// upstream pose-estimation stage and loads them from disk.
package keypoints

// COCO-17 joint indices.
const (
	Nose = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
)

// NumJoints is the joint count of the COCO-17 skeleton.
const NumJoints = 17

// Skeleton lists COCO-17 limb connectivity as joint-index pairs, in
// drawing order: head, torso and arms, then legs.
var Skeleton = [][2]int{
	{Nose, LeftEye}, {Nose, RightEye}, {LeftEye, LeftEar}, {RightEye, RightEar},
	{LeftShoulder, RightShoulder}, {LeftShoulder, LeftElbow}, {LeftElbow, LeftWrist},
	{RightShoulder, RightElbow}, {RightElbow, RightWrist},
	{LeftShoulder, LeftHip}, {RightShoulder, RightHip}, {LeftHip, RightHip},
	{LeftHip, LeftKnee}, {LeftKnee, LeftAnkle},
	{RightHip, RightKnee}, {RightKnee, RightAnkle},
}

// FrameSample holds one frame of pose output: joint coordinates in pixel
// space and the per-joint confidence reported by the estimator.
type FrameSample struct {
	Joints [NumJoints][2]float64
	Scores [NumJoints]float64
}

// Store is a dense, frame-indexed collection of keypoint samples for one
// video. Frame indices are contiguous from zero, so every lookup is a
// bounds-checked slice access rather than a key probe.
type Store struct {
	frames []FrameSample
	path   string
}

// NewStore wraps already-built samples, mainly for tests and synthetic
// inputs. The path may be empty.
func NewStore(frames []FrameSample, path string) *Store {
	return &Store{frames: frames, path: path}
}

// Len returns the number of keypoint frames.
func (s *Store) Len() int { return len(s.frames) }

// Path returns the file the store was loaded from, or "" for synthetic
// stores.
func (s *Store) Path() string { return s.path }

// Sample returns the full keypoint sample for a frame.
func (s *Store) Sample(frame int) FrameSample { return s.frames[frame] }

// Joint returns the (x, y) pixel coordinates of one joint at one frame.
func (s *Store) Joint(frame, joint int) (x, y float64) {
	j := s.frames[frame].Joints[joint]
	return j[0], j[1]
}

// Score returns the confidence of one joint at one frame.
func (s *Store) Score(frame, joint int) float64 {
	return s.frames[frame].Scores[joint]
}
