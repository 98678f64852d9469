// Package pose provides body keypoint extraction for squat analysis.
package pose

// Body landmark indices following the MediaPipe BlazePose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Point represents a 2D point with x, y coordinates. Coordinates may be
// pixel positions or normalized [0,1] values; callers only need to supply
// the same unit for every point of one frame.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// KeyPoints are the four side-view joints consumed by the squat analyzer,
// in a coordinate system where larger Y is lower on screen.
type KeyPoints struct {
	Shoulder Point `json:"shoulder"`
	Hip      Point `json:"hip"`
	Knee     Point `json:"knee"`
	Ankle    Point `json:"ankle"`
}

// BodyLandmarks represents a full 33-point body detection.
type BodyLandmarks struct {
	Points [NumLandmarks]Point `json:"points"`
	Score  float64             `json:"score"`
}

// RightSide extracts the right-side shoulder, hip, knee and ankle used for
// side-on squat analysis. The subject is expected to stand with their right
// side toward the camera.
func (b *BodyLandmarks) RightSide() *KeyPoints {
	if b == nil {
		return nil
	}
	return &KeyPoints{
		Shoulder: b.Points[RightShoulder],
		Hip:      b.Points[RightHip],
		Knee:     b.Points[RightKnee],
		Ankle:    b.Points[RightAnkle],
	}
}
