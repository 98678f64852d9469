package squat

import "image/color"

// Display colors attached to classification labels. The state machine treats
// these as opaque tags; only the renderer interprets them.
var (
	ColorGray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	ColorWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorOrange    = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	ColorGreen     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	ColorDarkGreen = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	ColorYellow    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	ColorMagenta   = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	ColorRed       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ColorCyan      = color.RGBA{R: 0, G: 255, B: 255, A: 255}
)

// KneeLabel classifies a knee angle into a depth description. An angle of 0
// is the no-measurement case. The range checks run in this exact order; the
// bands share boundaries and the first match wins.
func KneeLabel(angle float64) (string, color.RGBA) {
	switch {
	case angle == 0:
		return "No data", ColorGray
	case angle >= 170:
		return "Standing position", ColorWhite
	case angle > 135:
		return "Shallow squat", ColorOrange
	case angle >= 110:
		return "Perfect depth!", ColorGreen
	case angle >= 90:
		return "Good depth", ColorDarkGreen
	case angle >= 70:
		return "Parallel squat", ColorYellow
	default:
		return "Very deep squat", ColorMagenta
	}
}

// TorsoLabel classifies a torso angle into a lean description. An angle of 0
// is the no-measurement case.
func TorsoLabel(angle float64) (string, color.RGBA) {
	switch {
	case angle == 0:
		return "No data", ColorGray
	case angle >= 30 && angle <= 45:
		return "Good torso angle", ColorGreen
	case angle >= 20 && angle < 30:
		return "Too upright", ColorOrange
	case angle > 45 && angle <= 60:
		return "Slight forward lean", ColorYellow
	case angle > 60:
		return "Too much forward lean", ColorRed
	default:
		return "Very upright", ColorOrange
	}
}

// DepthCategory classifies a knee angle into a coarse depth bucket.
func DepthCategory(angle float64) (string, color.RGBA) {
	switch {
	case angle == 0:
		return "No data", ColorGray
	case angle > 135:
		return "Partial/Shallow", ColorOrange
	case angle >= 90:
		return "Parallel to Deep", ColorGreen
	default:
		return "Very Deep", ColorCyan
	}
}

// Overall combines the knee and torso angles into a single form assessment.
func Overall(knee, torso float64) string {
	if knee == 0 || torso == 0 {
		return "Checking form..."
	}

	kneeGood := knee >= 110 && knee <= 135
	torsoGood := torso >= 30 && torso <= 45

	switch {
	case kneeGood && torsoGood:
		return "Excellent form!"
	case kneeGood || torsoGood:
		return "Good form"
	default:
		return "Focus on form"
	}
}
