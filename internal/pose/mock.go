package pose

import (
	"gocv.io/x/gocv"
)

// MockProvider is a test implementation of the Provider interface.
// It allows tests to control the detection results.
type MockProvider struct {
	keyPoints *KeyPoints
	err       error
}

// NewMockProvider creates a new MockProvider instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// SetKeyPoints sets the keypoints that will be returned by Detect.
// Pass nil to simulate a frame with no detectable pose.
func (m *MockProvider) SetKeyPoints(kp *KeyPoints) {
	m.keyPoints = kp
}

// SetError sets the error that will be returned by Detect.
func (m *MockProvider) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured keypoints or error.
func (m *MockProvider) Detect(frame *gocv.Mat) (*KeyPoints, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.keyPoints, nil
}

// Close is a no-op for the mock provider.
func (m *MockProvider) Close() error {
	return nil
}

// StandingKeyPoints returns preset keypoints for an upright subject seen
// from the right side. The knee angle is close to 180 degrees.
func StandingKeyPoints() KeyPoints {
	return KeyPoints{
		Shoulder: Point{X: 330, Y: 90},
		Hip:      Point{X: 322, Y: 210},
		Knee:     Point{X: 320, Y: 330},
		Ankle:    Point{X: 320, Y: 440},
	}
}

// DeepSquatKeyPoints returns preset keypoints for a squat at roughly 120
// degrees of knee flexion with a forward-leaning torso around 35 degrees.
func DeepSquatKeyPoints() KeyPoints {
	return KeyPoints{
		Shoulder: Point{X: 258, Y: 267},
		Hip:      Point{X: 407, Y: 280},
		Knee:     Point{X: 320, Y: 330},
		Ankle:    Point{X: 320, Y: 440},
	}
}

// ParallelSquatKeyPoints returns preset keypoints for a squat just below
// parallel, with a knee angle around 85 degrees and the hip slightly lower
// than the knee on screen.
func ParallelSquatKeyPoints() KeyPoints {
	return KeyPoints{
		Shoulder: Point{X: 328, Y: 208},
		Hip:      Point{X: 420, Y: 339},
		Knee:     Point{X: 320, Y: 330},
		Ankle:    Point{X: 320, Y: 440},
	}
}
