package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jacdevv/gym-form/internal/pose"
)

func TestCalibrationHandler_Status_Initial(t *testing.T) {
	handler := NewCalibrationHandler(pose.NewCalibrator())

	req := httptest.NewRequest(http.MethodGet, "/api/calibration", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response calibrationStatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Complete {
		t.Error("expected complete = false initially")
	}
	if response.Pending != "shoulder" {
		t.Errorf("expected pending 'shoulder', got %q", response.Pending)
	}
	if len(response.Progress) != 4 {
		t.Fatalf("expected 4 progress entries, got %d", len(response.Progress))
	}
	for _, p := range response.Progress {
		if p.Set {
			t.Errorf("point %q marked set before any click", p.Name)
		}
	}
	if response.Points != nil {
		t.Error("expected no points before calibration completes")
	}
}

func TestCalibrationHandler_ClickSequence(t *testing.T) {
	cal := pose.NewCalibrator()
	handler := NewCalibrationHandler(cal)

	wantNext := []string{"hip", "knee", "ankle", ""}
	for i, next := range wantNext {
		body := fmt.Sprintf(`{"x": %d, "y": %d}`, 100+i, 200+i)
		req := httptest.NewRequest(http.MethodPost, "/api/calibration", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("click %d: expected status %d, got %d", i, http.StatusOK, rec.Code)
		}

		var response calibrationClickResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("click %d: failed to decode response: %v", i, err)
		}

		if response.Next != next {
			t.Errorf("click %d: next = %q, want %q", i, response.Next, next)
		}
		if wantComplete := i == 3; response.Complete != wantComplete {
			t.Errorf("click %d: complete = %v, want %v", i, response.Complete, wantComplete)
		}
	}

	if kp := cal.Points(); kp == nil || kp.Shoulder.X != 100 || kp.Ankle.Y != 203 {
		t.Errorf("calibrator points = %+v after sequence", kp)
	}
}

func TestCalibrationHandler_Click_AfterComplete(t *testing.T) {
	cal := pose.NewCalibrator()
	cal.Load(pose.StandingKeyPoints())
	handler := NewCalibrationHandler(cal)

	req := httptest.NewRequest(http.MethodPost, "/api/calibration", bytes.NewBufferString(`{"x": 1, "y": 1}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestCalibrationHandler_Click_InvalidJSON(t *testing.T) {
	handler := NewCalibrationHandler(pose.NewCalibrator())

	req := httptest.NewRequest(http.MethodPost, "/api/calibration", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCalibrationHandler_Reset(t *testing.T) {
	cal := pose.NewCalibrator()
	cal.Load(pose.StandingKeyPoints())
	handler := NewCalibrationHandler(cal)

	req := httptest.NewRequest(http.MethodDelete, "/api/calibration", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	if cal.Complete() {
		t.Error("calibrator still complete after reset")
	}
}

func TestCalibrationHandler_MethodNotAllowed(t *testing.T) {
	handler := NewCalibrationHandler(pose.NewCalibrator())

	req := httptest.NewRequest(http.MethodPatch, "/api/calibration", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
