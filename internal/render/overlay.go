// Package render draws analysis overlays onto video frames.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/jacdevv/gym-form/internal/pose"
	"github.com/jacdevv/gym-form/internal/squat"
)

// Overlay layout constants.
const (
	panelLeft   = 10
	panelTop    = 10
	panelRight  = 400
	panelBottom = 215
	feedbackTop = 225
	lineHeight  = 25
	jointRadius = 8
	boneThick   = 2
	textFont    = gocv.FontHersheySimplex
	smallScale  = 0.5
	mediumScale = 0.6
)

var (
	panelBg    = color.RGBA{A: 255}
	feedbackBg = color.RGBA{B: 100, A: 255}
)

func pt(p pose.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// Skeleton draws the shoulder-hip-knee-ankle segments with joint markers
// and three-letter joint labels.
func Skeleton(frame *gocv.Mat, kp *pose.KeyPoints) {
	if kp == nil {
		return
	}

	joints := []struct {
		name  string
		point pose.Point
	}{
		{"shoulder", kp.Shoulder},
		{"hip", kp.Hip},
		{"knee", kp.Knee},
		{"ankle", kp.Ankle},
	}

	for i := 0; i < len(joints)-1; i++ {
		gocv.Line(frame, pt(joints[i].point), pt(joints[i+1].point), squat.ColorGreen, boneThick)
	}

	for _, j := range joints {
		gocv.Circle(frame, pt(j.point), jointRadius, squat.ColorRed, -1)
		label := strings.ToUpper(j.name[:3])
		org := image.Pt(int(j.point.X)+10, int(j.point.Y)-10)
		gocv.PutText(frame, label, org, textFont, smallScale, squat.ColorWhite, 1)
	}
}

// Metrics draws the per-frame dashboard panel: raw angles with their
// classification labels, the depth status, the rep counter and the
// standing/in-squat line.
func Metrics(frame *gocv.Mat, res squat.Result) {
	gocv.Rectangle(frame, image.Rect(panelLeft, panelTop, panelRight, panelBottom), panelBg, -1)
	gocv.Rectangle(frame, image.Rect(panelLeft, panelTop, panelRight, panelBottom), squat.ColorWhite, 2)

	y := panelTop + lineHeight
	line := func(text string, c color.RGBA, scale float64, thick int) {
		gocv.PutText(frame, text, image.Pt(panelLeft+10, y), textFont, scale, c, thick)
		y += lineHeight
	}

	kneeLabel, kneeColor := squat.KneeLabel(res.KneeAngle)
	torsoLabel, torsoColor := squat.TorsoLabel(res.TorsoAngle)
	depthLabel, depthColor := squat.DepthCategory(res.KneeAngle)

	line(fmt.Sprintf("Knee Angle: %.1f  (%s)", res.KneeAngle, kneeLabel), kneeColor, smallScale, 1)
	line(fmt.Sprintf("Torso Angle: %.1f  (%s)", res.TorsoAngle, torsoLabel), torsoColor, smallScale, 1)
	line(fmt.Sprintf("Depth: %s", depthLabel), depthColor, smallScale, 1)

	statusColor := squat.ColorRed
	if res.DepthStatus == squat.DepthBelowParallel {
		statusColor = squat.ColorGreen
	}
	line(fmt.Sprintf("Status: %s", res.DepthStatus), statusColor, smallScale, 1)

	line(fmt.Sprintf("Reps: %d", res.RepCount), squat.ColorYellow, mediumScale, 2)

	if res.InSquat {
		line(squat.InSquat.String(), squat.ColorOrange, smallScale, 1)
	} else {
		line(squat.Standing.String(), squat.ColorWhite, smallScale, 1)
	}

	line(squat.Overall(res.KneeAngle, res.TorsoAngle), squat.ColorWhite, smallScale, 1)
}

// Feedback draws the post-rep feedback box while the display countdown is
// positive. The deepest angles come from the machine, frozen at rep
// completion.
func Feedback(frame *gocv.Mat, res squat.Result, deepestKnee, deepestTorso float64) {
	if res.FeedbackTicks <= 0 || res.LastFeedback == "" {
		return
	}

	box := image.Rect(panelLeft, feedbackTop, 600, feedbackTop+80)
	gocv.Rectangle(frame, box, feedbackBg, -1)
	gocv.Rectangle(frame, box, squat.ColorWhite, 2)

	gocv.PutText(frame, fmt.Sprintf("Rep %d Feedback:", res.RepCount),
		image.Pt(panelLeft+10, feedbackTop+20), textFont, mediumScale, squat.ColorYellow, 2)
	gocv.PutText(frame, res.LastFeedback,
		image.Pt(panelLeft+10, feedbackTop+45), textFont, smallScale, squat.ColorWhite, 1)
	gocv.PutText(frame, fmt.Sprintf("Deepest: Knee %.1f | Torso %.1f", deepestKnee, deepestTorso),
		image.Pt(panelLeft+10, feedbackTop+65), textFont, 0.4, squat.ColorGray, 1)
}

// Setup draws the calibration instruction and the per-point checklist shown
// until all four joints are marked.
func Setup(frame *gocv.Mat, progress []pose.PointStatus, pending string) {
	if pending == "" {
		return
	}

	instruction := fmt.Sprintf("Click to set %s", strings.ToUpper(pending))
	gocv.PutText(frame, instruction, image.Pt(panelLeft, 30), textFont, 0.8, squat.ColorCyan, 2)

	y := 60
	for _, p := range progress {
		marker := "[ ]"
		c := squat.ColorRed
		if p.Set {
			marker = "[x]"
			c = squat.ColorGreen
		}
		gocv.PutText(frame, fmt.Sprintf("%s %s", marker, strings.ToUpper(p.Name)),
			image.Pt(panelLeft, y), textFont, smallScale, c, 1)
		y += 25
	}
}
