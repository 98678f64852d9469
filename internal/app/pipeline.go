package app

import (
	"errors"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/jacdevv/gym-form/internal/capture"
	"github.com/jacdevv/gym-form/internal/pose"
	"github.com/jacdevv/gym-form/internal/render"
)

// runPipeline is the main analysis loop that processes frames from the
// source. It manages the state transitions between idle and active modes
// based on motion detection.
//
// Pipeline logic:
//  1. Start in idle mode (idleFPS=5)
//  2. On motion detected, switch to active mode (activeFPS=15)
//  3. Run pose detection when active
//  4. Feed the rep state machine every tick; gated or undetected frames
//     count as missing-pose frames so feedback display time still elapses
//  5. Draw the skeleton, metrics panel and feedback overlays
//  6. Publish the annotated frame and result snapshot
//  7. After 2s without motion, switch back to idle mode
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.source.ReadFrame()
			if err != nil {
				if errors.Is(err, capture.ErrEndOfVideo) {
					log.Println("End of video reached")
					return
				}
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion gating
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.source.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.source.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			a.processFrame(frame, activeMode)
		}
	}
}

// processFrame runs pose detection on one frame, advances the state machine,
// draws the overlays and publishes the annotated frame. It takes ownership
// of the frame. Gated frames skip detection but still tick the machine so
// the feedback display countdown keeps pace.
func (a *App) processFrame(frame *gocv.Mat, active bool) {
	provider := a.Provider()

	var kp *pose.KeyPoints
	if active {
		var err error
		kp, err = provider.Detect(frame)
		if err != nil {
			log.Printf("Error detecting pose: %v", err)
			kp = nil
		}
	}

	a.mu.Lock()
	prevReps := a.machine.RepCount()
	res := a.machine.Observe(kp)
	deepKnee, deepTorso := a.machine.Deepest()
	a.latest = res
	onRep := a.onRep
	a.mu.Unlock()

	if res.RepCount > prevReps {
		log.Printf("Rep %d complete: %s", res.RepCount, res.LastFeedback)
		if onRep != nil {
			onRep(res)
		}
	}

	render.Skeleton(frame, kp)
	render.Metrics(frame, res)
	render.Feedback(frame, res, deepKnee, deepTorso)

	if provider == a.cal && !a.cal.Complete() {
		render.Setup(frame, a.cal.Progress(), a.cal.Pending())
	}

	a.mu.Lock()
	if a.snapshot != nil {
		a.snapshot.Close()
	}
	a.snapshot = frame
	a.mu.Unlock()
}
