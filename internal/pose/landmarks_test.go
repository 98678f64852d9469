package pose

import "testing"

func TestBodyLandmarks_RightSide(t *testing.T) {
	body := &BodyLandmarks{Score: 0.9}
	body.Points[RightShoulder] = Point{X: 0.61, Y: 0.32}
	body.Points[RightHip] = Point{X: 0.58, Y: 0.55}
	body.Points[RightKnee] = Point{X: 0.57, Y: 0.74}
	body.Points[RightAnkle] = Point{X: 0.56, Y: 0.92}

	kp := body.RightSide()
	if kp == nil {
		t.Fatal("RightSide() = nil")
	}

	if kp.Shoulder != (Point{X: 0.61, Y: 0.32}) {
		t.Errorf("Shoulder = %v", kp.Shoulder)
	}
	if kp.Hip != (Point{X: 0.58, Y: 0.55}) {
		t.Errorf("Hip = %v", kp.Hip)
	}
	if kp.Knee != (Point{X: 0.57, Y: 0.74}) {
		t.Errorf("Knee = %v", kp.Knee)
	}
	if kp.Ankle != (Point{X: 0.56, Y: 0.92}) {
		t.Errorf("Ankle = %v", kp.Ankle)
	}
}

func TestBodyLandmarks_RightSideNil(t *testing.T) {
	var body *BodyLandmarks
	if kp := body.RightSide(); kp != nil {
		t.Errorf("RightSide() on nil receiver = %+v, want nil", kp)
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()

	// Default: no pose, no error.
	kp, err := m.Detect(nil)
	if err != nil || kp != nil {
		t.Errorf("Detect() = (%v, %v), want (nil, nil)", kp, err)
	}

	deep := DeepSquatKeyPoints()
	m.SetKeyPoints(&deep)

	kp, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if kp == nil || *kp != deep {
		t.Errorf("Detect() = %+v, want deep squat keypoints", kp)
	}
}
