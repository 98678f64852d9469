package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacdevv/gym-form/internal/app"
	"github.com/jacdevv/gym-form/internal/pose"
	"github.com/jacdevv/gym-form/internal/server"
	"github.com/jacdevv/gym-form/internal/squat"
	"github.com/jacdevv/gym-form/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{
		Store:        s,
		MotionThresh: 0.05,
	})
	defer application.Stop()

	mock := pose.NewMockProvider()
	application.SetProvider(mock)
	application.SetEnabled(true)

	srv := server.New(server.Config{
		Store:      s,
		Calibrator: application.Calibrator(),
		Session:    application,
	})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	var profileID string

	t.Run("CalibrateByClicks", func(t *testing.T) {
		clicks := []string{
			`{"x": 330, "y": 90}`,
			`{"x": 322, "y": 210}`,
			`{"x": 320, "y": 330}`,
			`{"x": 320, "y": 440}`,
		}
		for i, body := range clicks {
			resp, err := client.Post(ts.URL+"/api/calibration", "application/json", strings.NewReader(body))
			if err != nil {
				t.Fatalf("click %d error = %v", i, err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("click %d status = %d, want %d", i, resp.StatusCode, http.StatusOK)
			}
			resp.Body.Close()
		}

		if !application.Calibrator().Complete() {
			t.Fatal("calibration not complete after four clicks")
		}
	})

	t.Run("SaveProfile", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/profiles",
			"application/json",
			strings.NewReader(`{"name": "e2e-setup"}`),
		)
		if err != nil {
			t.Fatalf("create profile error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var created struct {
			ID string `json:"id"`
		}
		json.NewDecoder(resp.Body).Decode(&created)
		profileID = created.ID
	})

	t.Run("ActivateProfile", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/profiles/"+profileID+"/activate", "application/json", nil)
		if err != nil {
			t.Fatalf("activate profile error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		active, err := s.Settings().Get(store.SettingActiveProfile)
		if err != nil || active != profileID {
			t.Errorf("active profile = %q, %v; want %q", active, err, profileID)
		}
	})

	t.Run("SessionReportsReps", func(t *testing.T) {
		// Drive one full rep through the machine the way the pipeline would.
		for _, kp := range []pose.KeyPoints{
			pose.StandingKeyPoints(),
			pose.DeepSquatKeyPoints(),
			pose.DeepSquatKeyPoints(),
			pose.StandingKeyPoints(),
		} {
			application.Observe(&kp)
		}

		resp, err := client.Get(ts.URL + "/api/session")
		if err != nil {
			t.Fatalf("get session error = %v", err)
		}
		defer resp.Body.Close()

		var session struct {
			Enabled bool         `json:"enabled"`
			Result  squat.Result `json:"result"`
		}
		json.NewDecoder(resp.Body).Decode(&session)

		if !session.Enabled {
			t.Error("session not enabled")
		}
		if session.Result.RepCount != 1 {
			t.Errorf("rep count = %d, want 1", session.Result.RepCount)
		}
		if session.Result.LastFeedback == "" {
			t.Error("expected feedback after completed rep")
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_ProfileRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "data.db"))
	defer s.Close()

	cal := pose.NewCalibrator()
	srv := server.New(server.Config{Store: s, Calibrator: cal})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// Create with explicit points, then activate into a fresh calibrator and
	// confirm the loaded points produce the expected standing angles.
	createBody := `{"name": "round-trip", "points": {
		"shoulder": {"x": 330, "y": 90},
		"hip": {"x": 322, "y": 210},
		"knee": {"x": 320, "y": 330},
		"ankle": {"x": 320, "y": 440}
	}}`
	resp, err := client.Post(ts.URL+"/api/profiles", "application/json", strings.NewReader(createBody))
	if err != nil {
		t.Fatalf("create profile error = %v", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	resp, _ = client.Post(ts.URL+"/api/profiles/"+created.ID+"/activate", "application/json", nil)
	resp.Body.Close()

	kp := cal.Points()
	if kp == nil {
		t.Fatal("calibrator empty after activation")
	}

	knee := squat.Angle(kp.Hip, kp.Knee, kp.Ankle)
	if knee < 170 {
		t.Errorf("standing knee angle = %.1f, want >= 170", knee)
	}
}
