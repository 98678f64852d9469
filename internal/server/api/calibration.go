package api

import (
	"encoding/json"
	"net/http"

	"github.com/jacdevv/gym-form/internal/pose"
)

// CalibrationHandler exposes the click-to-calibrate workflow over HTTP.
// GET reports progress, POST records a click, DELETE starts over.
type CalibrationHandler struct {
	cal *pose.Calibrator
}

// NewCalibrationHandler creates a new CalibrationHandler.
func NewCalibrationHandler(cal *pose.Calibrator) *CalibrationHandler {
	return &CalibrationHandler{cal: cal}
}

type calibrationClickRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type calibrationStatusResponse struct {
	Complete bool               `json:"complete"`
	Pending  string             `json:"pending,omitempty"`
	Progress []pose.PointStatus `json:"progress"`
	Points   *profilePoints     `json:"points,omitempty"`
}

type calibrationClickResponse struct {
	Next     string `json:"next,omitempty"`
	Complete bool   `json:"complete"`
}

// ServeHTTP implements the http.Handler interface.
func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.status(w, r)
	case http.MethodPost:
		h.click(w, r)
	case http.MethodDelete:
		h.reset(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// status handles GET /api/calibration.
func (h *CalibrationHandler) status(w http.ResponseWriter, r *http.Request) {
	response := calibrationStatusResponse{
		Complete: h.cal.Complete(),
		Pending:  h.cal.Pending(),
		Progress: h.cal.Progress(),
	}
	if kp := h.cal.Points(); kp != nil {
		response.Points = pointsFromKeyPoints(kp)
	}

	writeJSON(w, http.StatusOK, response)
}

// click handles POST /api/calibration and marks the next joint position.
func (h *CalibrationHandler) click(w http.ResponseWriter, r *http.Request) {
	var req calibrationClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if h.cal.Complete() {
		writeError(w, http.StatusConflict, "Calibration is already complete")
		return
	}

	next := h.cal.SetPoint(req.X, req.Y)

	writeJSON(w, http.StatusOK, calibrationClickResponse{
		Next:     next,
		Complete: h.cal.Complete(),
	})
}

// reset handles DELETE /api/calibration.
func (h *CalibrationHandler) reset(w http.ResponseWriter, r *http.Request) {
	h.cal.Reset()
	w.WriteHeader(http.StatusNoContent)
}
