package squat

import "github.com/jacdevv/gym-form/internal/pose"

// Rep detection constants.
const (
	// SquatThreshold is the knee angle in degrees separating standing from
	// squatting. Crossing it downward opens a rep; crossing it back upward
	// completes the rep.
	SquatThreshold = 140.0

	// FeedbackDuration is the number of update ticks the post-rep feedback
	// stays armed, roughly 3 seconds when frames arrive at 60 per second.
	FeedbackDuration = 180
)

// State identifies the phase of the rep cycle.
type State int

const (
	// Standing is the initial state, knee angle at or above the threshold.
	Standing State = iota
	// InSquat means a rep is open: the knee angle dropped below the
	// threshold and has not yet returned above it.
	InSquat
)

// String returns a human-readable state name.
func (s State) String() string {
	if s == InSquat {
		return "In squat"
	}
	return "Standing"
}

// Sample is one frame's joint angle measurements in degrees. A Sample is
// only constructed for frames where a pose was actually found; absence of a
// pose is expressed by passing a nil *Sample to Update, never by zero angles.
type Sample struct {
	Knee  float64 `json:"knee_angle"`
	Torso float64 `json:"torso_angle"`
}

// Result is the per-frame output snapshot. Angles are zero when no pose was
// detected on that frame; downstream display code relies on the classifier
// treating zero as "No data".
type Result struct {
	KneeAngle     float64 `json:"knee_angle"`
	TorsoAngle    float64 `json:"torso_angle"`
	DepthStatus   string  `json:"depth_status"`
	RepCount      int     `json:"rep_count"`
	InSquat       bool    `json:"in_squat"`
	LastFeedback  string  `json:"last_feedback"`
	FeedbackTicks int     `json:"feedback_ticks"`
}

// Machine tracks squat repetitions over an ordered stream of per-frame
// samples. It owns all rep-session state: the monotonic rep counter, the
// standing/in-squat phase, the deepest position of the open rep and the
// feedback for the last completed rep.
//
// A Machine is not safe for concurrent use; it assumes exactly one caller
// feeding it one sequential stream of frames.
type Machine struct {
	state         State
	repCount      int
	deepestKnee   float64
	deepestTorso  float64
	lastFeedback  string
	feedbackTicks int
	repSamples    []Sample
}

// NewMachine creates a Machine in the Standing state with zero reps.
func NewMachine() *Machine {
	return &Machine{
		deepestKnee: 180,
	}
}

// Update consumes one frame's sample and returns the session snapshot.
// A nil sample means no pose was detected this frame: no transition fires
// and the deepest-position tracking is untouched, but the feedback tick
// countdown still advances, since it paces on-screen display time, not
// detection time.
//
// Transitions:
//   - Standing -> InSquat when the knee angle drops below SquatThreshold.
//     The current frame seeds the deepest position and the rep buffer is
//     cleared.
//   - InSquat -> Standing when the knee angle returns to or above
//     SquatThreshold. The rep counter increments, feedback is generated
//     from the frozen deepest position and the display countdown re-arms.
func (m *Machine) Update(s *Sample) Result {
	if m.feedbackTicks > 0 {
		m.feedbackTicks--
	}

	if s != nil {
		switch m.state {
		case Standing:
			if s.Knee < SquatThreshold {
				m.state = InSquat
				m.deepestKnee = s.Knee
				m.deepestTorso = s.Torso
				m.repSamples = m.repSamples[:0]
			}
		case InSquat:
			// Deepest position is keyed on the knee angle alone; the torso
			// value is whatever the torso measured on that same frame.
			if s.Knee < m.deepestKnee {
				m.deepestKnee = s.Knee
				m.deepestTorso = s.Torso
			}

			m.repSamples = append(m.repSamples, *s)

			if s.Knee >= SquatThreshold {
				m.state = Standing
				m.repCount++
				m.lastFeedback = Feedback(m.deepestKnee, m.deepestTorso)
				m.feedbackTicks = FeedbackDuration
			}
		}
	}

	res := Result{
		DepthStatus:   DepthUnknown,
		RepCount:      m.repCount,
		InSquat:       m.state == InSquat,
		LastFeedback:  m.lastFeedback,
		FeedbackTicks: m.feedbackTicks,
	}
	if s != nil {
		res.KneeAngle = s.Knee
		res.TorsoAngle = s.Torso
	}
	return res
}

// Observe is the keypoint-level entry point: it derives the knee and torso
// angles from the four tracked joints, feeds them through Update and fills
// in the depth status. Passing nil keypoints signals a frame with no pose.
func (m *Machine) Observe(kp *pose.KeyPoints) Result {
	if kp == nil {
		return m.Update(nil)
	}

	sample := Sample{
		Knee:  Angle(kp.Hip, kp.Knee, kp.Ankle),
		Torso: Angle(kp.Shoulder, kp.Hip, kp.Knee),
	}

	res := m.Update(&sample)
	res.DepthStatus = DepthStatus(kp.Hip, kp.Knee)
	return res
}

// State returns the current phase of the rep cycle.
func (m *Machine) State() State {
	return m.state
}

// RepCount returns the number of completed reps this session.
func (m *Machine) RepCount() int {
	return m.repCount
}

// Deepest returns the knee and torso angles at the deepest point of the
// open rep, or of the last completed rep when no rep is open.
func (m *Machine) Deepest() (knee, torso float64) {
	return m.deepestKnee, m.deepestTorso
}

// LastFeedback returns the feedback text for the most recently completed
// rep. It persists until overwritten by the next completed rep.
func (m *Machine) LastFeedback() string {
	return m.lastFeedback
}

// FeedbackTicks returns the remaining display ticks for the last feedback.
func (m *Machine) FeedbackTicks() int {
	return m.feedbackTicks
}

// RepSamples returns a copy of the angle samples collected while the
// current rep has been open. Collaborators may use it for graphing; the
// machine itself does not consume it.
func (m *Machine) RepSamples() []Sample {
	out := make([]Sample, len(m.repSamples))
	copy(out, m.repSamples)
	return out
}

// Reset returns the machine to its initial session state.
func (m *Machine) Reset() {
	*m = Machine{deepestKnee: 180}
}
