package pose

import "testing"

func TestCalibrator_ClickSequence(t *testing.T) {
	c := NewCalibrator()

	if c.Complete() {
		t.Fatal("new calibrator should not be complete")
	}
	if got := c.Pending(); got != "shoulder" {
		t.Errorf("Pending() = %q, want %q", got, "shoulder")
	}

	steps := []struct {
		x, y     float64
		wantNext string
	}{
		{330, 90, "hip"},
		{322, 210, "knee"},
		{320, 330, "ankle"},
		{320, 440, ""},
	}

	for _, step := range steps {
		next := c.SetPoint(step.x, step.y)
		if next != step.wantNext {
			t.Errorf("SetPoint(%v, %v) next = %q, want %q", step.x, step.y, next, step.wantNext)
		}
	}

	if !c.Complete() {
		t.Fatal("calibrator should be complete after four points")
	}

	kp := c.Points()
	if kp == nil {
		t.Fatal("Points() = nil after completion")
	}
	if kp.Shoulder != (Point{X: 330, Y: 90}) {
		t.Errorf("Shoulder = %v", kp.Shoulder)
	}
	if kp.Ankle != (Point{X: 320, Y: 440}) {
		t.Errorf("Ankle = %v", kp.Ankle)
	}
}

func TestCalibrator_ExtraClicksIgnored(t *testing.T) {
	c := NewCalibrator()
	for i := 0; i < 4; i++ {
		c.SetPoint(float64(i), float64(i))
	}

	if next := c.SetPoint(999, 999); next != "" {
		t.Errorf("SetPoint after completion next = %q, want %q", next, "")
	}

	kp := c.Points()
	if kp.Ankle != (Point{X: 3, Y: 3}) {
		t.Errorf("extra click overwrote ankle: %v", kp.Ankle)
	}
}

func TestCalibrator_Reset(t *testing.T) {
	c := NewCalibrator()
	c.SetPoint(1, 1)
	c.SetPoint(2, 2)

	c.Reset()

	if c.Pending() != "shoulder" {
		t.Errorf("Pending() after reset = %q, want %q", c.Pending(), "shoulder")
	}
	if c.Points() != nil {
		t.Error("Points() after reset should be nil")
	}

	progress := c.Progress()
	for _, p := range progress {
		if p.Set {
			t.Errorf("point %q still marked set after reset", p.Name)
		}
	}
}

func TestCalibrator_Progress(t *testing.T) {
	c := NewCalibrator()
	c.SetPoint(1, 1)
	c.SetPoint(2, 2)

	progress := c.Progress()
	if len(progress) != 4 {
		t.Fatalf("len(Progress()) = %d, want 4", len(progress))
	}

	want := []PointStatus{
		{Name: "shoulder", Set: true},
		{Name: "hip", Set: true},
		{Name: "knee", Set: false},
		{Name: "ankle", Set: false},
	}
	for i, p := range progress {
		if p != want[i] {
			t.Errorf("Progress()[%d] = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestCalibrator_Load(t *testing.T) {
	c := NewCalibrator()
	c.Load(StandingKeyPoints())

	if !c.Complete() {
		t.Fatal("calibrator should be complete after Load")
	}

	kp, err := c.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if kp == nil {
		t.Fatal("Detect() = nil after Load")
	}
	if *kp != StandingKeyPoints() {
		t.Errorf("Detect() = %+v, want standing keypoints", *kp)
	}
}

func TestCalibrator_DetectBeforeComplete(t *testing.T) {
	c := NewCalibrator()
	c.SetPoint(1, 1)

	kp, err := c.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if kp != nil {
		t.Errorf("Detect() = %+v before completion, want nil", kp)
	}
}
