// Package app provides the main application logic for the gym-form squat analysis system.
package app

import (
	"errors"
	"log"
	"sync"

	"gocv.io/x/gocv"

	"github.com/jacdevv/gym-form/internal/capture"
	"github.com/jacdevv/gym-form/internal/pose"
	"github.com/jacdevv/gym-form/internal/squat"
	"github.com/jacdevv/gym-form/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active analysis.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// ErrNoSource is returned by Start when no frame source was configured.
var ErrNoSource = errors.New("no frame source configured")

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	Source       capture.Source
	PoseConfig   pose.Config
	MotionThresh float64
}

// App orchestrates the analysis pipeline: frames in, pose detection, rep
// state machine, annotated frames and session state out.
type App struct {
	config   Config
	source   capture.Source
	motion   *capture.MotionGate
	provider pose.Provider
	cal      *pose.Calibrator
	machine  *squat.Machine
	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}
	doneCh   chan struct{}
	latest   squat.Result
	snapshot *gocv.Mat
	onRep    func(squat.Result)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:  config,
		source:  config.Source,
		motion:  capture.NewMotionGate(motionThreshold),
		cal:     pose.NewCalibrator(),
		machine: squat.NewMachine(),
		enabled: false,
		stopCh:  nil,
	}

	// Try the landmark service first, fall back to click calibration
	if sp, err := pose.NewServiceProvider(config.PoseConfig); err == nil {
		a.provider = sp
		log.Println("Using pose landmark service")
	} else {
		log.Printf("Pose service not available (%v), using click calibration", err)
		a.provider = a.cal
	}

	return a
}

// SetEnabled enables or disables squat analysis.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether squat analysis is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Enabled implements the server.SessionSource interface.
func (a *App) Enabled() bool {
	return a.IsEnabled()
}

// SetProvider sets the pose provider implementation to use.
func (a *App) SetProvider(p pose.Provider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provider = p
}

// Calibrator returns the click calibrator. It is always available, whether
// or not it is the active provider.
func (a *App) Calibrator() *pose.Calibrator {
	return a.cal
}

// SetOnRep registers a callback fired once per completed rep with the
// snapshot that completed it.
func (a *App) SetOnRep(fn func(squat.Result)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onRep = fn
}

// Observe feeds one frame's keypoints through the rep state machine and
// publishes the resulting snapshot. The pipeline goroutine is the usual
// caller; programs embedding the App without a frame source can drive it
// directly.
func (a *App) Observe(kp *pose.KeyPoints) squat.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.latest = a.machine.Observe(kp)
	return a.latest
}

// Result returns the latest per-frame analysis snapshot.
func (a *App) Result() squat.Result {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latest
}

// Summary returns the session totals: completed reps and the feedback for
// the last one.
func (a *App) Summary() (reps int, lastFeedback string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latest.RepCount, a.latest.LastFeedback
}

// SnapshotJPEG encodes the latest annotated frame as JPEG. It implements the
// server.FrameSource interface.
func (a *App) SnapshotJPEG() ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.snapshot == nil || a.snapshot.Empty() {
		return nil, errors.New("no frame available")
	}

	buf, err := gocv.IMEncode(".jpg", *a.snapshot)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// SnapshotMat returns a clone of the latest annotated frame, or nil when no
// frame has been processed yet. The caller owns the clone.
func (a *App) SnapshotMat() *gocv.Mat {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.snapshot == nil || a.snapshot.Empty() {
		return nil
	}
	clone := a.snapshot.Clone()
	return &clone
}

// LoadActiveProfile restores the recorded active calibration profile, if
// any, into the calibrator.
func (a *App) LoadActiveProfile() error {
	if a.config.Store == nil {
		return nil
	}

	id, err := a.config.Store.Settings().Get(store.SettingActiveProfile)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	profile, err := a.config.Store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	a.cal.Load(pose.KeyPoints{
		Shoulder: pose.Point{X: profile.ShoulderX, Y: profile.ShoulderY},
		Hip:      pose.Point{X: profile.HipX, Y: profile.HipY},
		Knee:     pose.Point{X: profile.KneeX, Y: profile.KneeY},
		Ankle:    pose.Point{X: profile.AnkleX, Y: profile.AnkleY},
	})

	log.Printf("Loaded calibration profile %q", profile.Name)
	return nil
}

// ResetSession clears the rep counter and feedback state.
func (a *App) ResetSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.machine.Reset()
	a.latest = squat.Result{}
}

// Start begins the analysis pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if a.source == nil {
		return ErrNoSource
	}

	if err := a.source.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.source.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	log.Println("Analysis pipeline started")
	return nil
}

// Stop halts the analysis pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	done := a.doneCh
	a.mu.Unlock()

	// Wait for the pipeline goroutine to let go of the source before
	// closing it.
	if done != nil {
		<-done
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.source != nil {
		if err := a.source.Close(); err != nil {
			log.Printf("Error closing frame source: %v", err)
		}
	}

	a.motion.Close()

	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			log.Printf("Error closing pose provider: %v", err)
		}
	}

	if a.snapshot != nil {
		a.snapshot.Close()
		a.snapshot = nil
	}

	log.Println("Analysis pipeline stopped")
}

// Done is closed when the pipeline goroutine exits, which happens on Stop or
// when a non-looping video source runs out of frames.
func (a *App) Done() <-chan struct{} {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.doneCh
}

// Source returns the frame source.
func (a *App) Source() capture.Source {
	return a.source
}

// MotionGate returns the motion gate instance.
func (a *App) MotionGate() *capture.MotionGate {
	return a.motion
}

// Provider returns the active pose provider.
func (a *App) Provider() pose.Provider {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.provider
}
