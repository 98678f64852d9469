package pose

import (
	"sync"

	"gocv.io/x/gocv"
)

// ClickOrder is the sequence in which the user marks joint positions.
var ClickOrder = [4]string{"shoulder", "hip", "knee", "ankle"}

// PointStatus reports whether one calibration point has been set.
type PointStatus struct {
	Name string `json:"name"`
	Set  bool   `json:"set"`
}

// Calibrator implements Provider with user-supplied joint positions.
// The user marks the shoulder, hip, knee and ankle in a fixed order;
// once all four are set the calibrator reports the same keypoints for
// every frame, which suits a fixed camera and a subject squatting in place.
type Calibrator struct {
	mu     sync.Mutex
	points [len(ClickOrder)]Point
	index  int
}

// NewCalibrator creates a Calibrator awaiting its first point.
func NewCalibrator() *Calibrator {
	return &Calibrator{}
}

// SetPoint records the next joint position in click order. It returns the
// name of the point that is now expected, or "" once setup is complete.
// Extra clicks after completion are ignored.
func (c *Calibrator) SetPoint(x, y float64) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index >= len(ClickOrder) {
		return ""
	}

	c.points[c.index] = Point{X: x, Y: y}
	c.index++

	if c.index >= len(ClickOrder) {
		return ""
	}
	return ClickOrder[c.index]
}

// Reset discards all points and restarts the click sequence from the shoulder.
func (c *Calibrator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}

// Complete reports whether all four points have been set.
func (c *Calibrator) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index >= len(ClickOrder)
}

// Pending returns the name of the next point to set, or "" when setup
// is complete.
func (c *Calibrator) Pending() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index >= len(ClickOrder) {
		return ""
	}
	return ClickOrder[c.index]
}

// Progress returns the set/unset status of each calibration point in
// click order.
func (c *Calibrator) Progress() []PointStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := make([]PointStatus, len(ClickOrder))
	for i, name := range ClickOrder {
		status[i] = PointStatus{Name: name, Set: i < c.index}
	}
	return status
}

// Points returns the calibrated keypoints, or nil until setup is complete.
func (c *Calibrator) Points() *KeyPoints {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyPointsLocked()
}

func (c *Calibrator) keyPointsLocked() *KeyPoints {
	if c.index < len(ClickOrder) {
		return nil
	}
	return &KeyPoints{
		Shoulder: c.points[0],
		Hip:      c.points[1],
		Knee:     c.points[2],
		Ankle:    c.points[3],
	}
}

// Load replaces the calibration with a previously saved set of keypoints
// and marks setup as complete.
func (c *Calibrator) Load(kp KeyPoints) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.points[0] = kp.Shoulder
	c.points[1] = kp.Hip
	c.points[2] = kp.Knee
	c.points[3] = kp.Ankle
	c.index = len(ClickOrder)
}

// Detect implements Provider. It ignores the frame content and returns the
// calibrated keypoints, or nil while setup is incomplete.
func (c *Calibrator) Detect(frame *gocv.Mat) (*KeyPoints, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyPointsLocked(), nil
}

// Close implements Provider. It is a no-op for the calibrator.
func (c *Calibrator) Close() error {
	return nil
}
