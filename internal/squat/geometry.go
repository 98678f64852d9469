// Package squat implements the rep-detection state machine and the
// angle-classification engine for squat form analysis.
package squat

import (
	"math"

	"github.com/jacdevv/gym-form/internal/pose"
)

// Depth status values reported per frame, derived from the hip and knee
// vertical positions rather than from the knee angle.
const (
	DepthBelowParallel = "Below Parallel"
	DepthAboveParallel = "Above Parallel"
	DepthUnknown       = "Unknown"
)

// Angle returns the angle in degrees at vertex b between the rays b->a and
// b->c. The result always lies in [0, 180] and is symmetric in a and c.
//
// The result is undefined when a or c coincides with b: the direction of a
// zero-length ray has no meaning. Callers must ensure the three points are
// distinct; Angle does not attempt to repair degenerate input.
func Angle(a, b, c pose.Point) float64 {
	rad := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	deg := math.Abs(rad * 180.0 / math.Pi)
	if deg > 180.0 {
		deg = 360.0 - deg
	}
	return deg
}

// DepthStatus reports whether the hip has dropped below the knee on screen.
// Coordinates grow downward, so a hip Y greater than the knee Y means the
// hip is lower and the squat is below parallel.
func DepthStatus(hip, knee pose.Point) string {
	if hip.Y > knee.Y {
		return DepthBelowParallel
	}
	return DepthAboveParallel
}
