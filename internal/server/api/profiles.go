// Package api provides HTTP API handlers for the gym-form squat analysis system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jacdevv/gym-form/internal/pose"
	"github.com/jacdevv/gym-form/internal/store"
)

// ProfileHandler handles HTTP requests for calibration profile resources.
type ProfileHandler struct {
	store *store.Store
	cal   *pose.Calibrator
}

// NewProfileHandler creates a new ProfileHandler. The calibrator is optional;
// when present, a create request without explicit points snapshots the
// current calibration.
func NewProfileHandler(s *store.Store, cal *pose.Calibrator) *ProfileHandler {
	return &ProfileHandler{store: s, cal: cal}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/profiles, /api/profiles/{id}, /api/profiles/{id}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type profilePoints struct {
	Shoulder pose.Point `json:"shoulder"`
	Hip      pose.Point `json:"hip"`
	Knee     pose.Point `json:"knee"`
	Ankle    pose.Point `json:"ankle"`
}

type createProfileRequest struct {
	Name   string         `json:"name"`
	Points *profilePoints `json:"points,omitempty"`
}

type updateProfileRequest struct {
	Name   string         `json:"name"`
	Points *profilePoints `json:"points,omitempty"`
}

type profileResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Points    profilePoints `json:"points"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Profile to a profileResponse.
func toResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:   p.ID,
		Name: p.Name,
		Points: profilePoints{
			Shoulder: pose.Point{X: p.ShoulderX, Y: p.ShoulderY},
			Hip:      pose.Point{X: p.HipX, Y: p.HipY},
			Knee:     pose.Point{X: p.KneeX, Y: p.KneeY},
			Ankle:    pose.Point{X: p.AnkleX, Y: p.AnkleY},
		},
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// applyPoints copies a points payload into the flat profile columns.
func applyPoints(p *store.Profile, pts *profilePoints) {
	p.ShoulderX, p.ShoulderY = pts.Shoulder.X, pts.Shoulder.Y
	p.HipX, p.HipY = pts.Hip.X, pts.Hip.Y
	p.KneeX, p.KneeY = pts.Knee.X, pts.Knee.Y
	p.AnkleX, p.AnkleY = pts.Ankle.X, pts.Ankle.Y
}

func pointsFromKeyPoints(kp *pose.KeyPoints) *profilePoints {
	return &profilePoints{
		Shoulder: kp.Shoulder,
		Hip:      kp.Hip,
		Knee:     kp.Knee,
		Ankle:    kp.Ankle,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/profiles and returns all calibration profiles.
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}

	for _, p := range profiles {
		response.Profiles = append(response.Profiles, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id} and returns a single profile.
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// create handles POST /api/profiles and creates a new calibration profile.
// When the request carries no points, the current completed calibration is
// saved under the given name.
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	points := req.Points
	if points == nil {
		if h.cal == nil || !h.cal.Complete() {
			writeError(w, http.StatusBadRequest, "Points are required when calibration is incomplete")
			return
		}
		points = pointsFromKeyPoints(h.cal.Points())
	}

	profile := &store.Profile{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	applyPoints(profile, points)

	if err := h.store.Profiles().Create(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(profile))
}

// update handles PUT /api/profiles/{id} and updates an existing profile.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Points != nil {
		applyPoints(profile, req.Points)
	}

	if err := h.store.Profiles().Update(profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// delete handles DELETE /api/profiles/{id} and removes a profile.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Profiles().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// activate handles POST /api/profiles/{id}/activate. It loads the profile
// into the calibrator and records it as the active profile.
func (h *ProfileHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	if h.cal != nil {
		h.cal.Load(pose.KeyPoints{
			Shoulder: pose.Point{X: profile.ShoulderX, Y: profile.ShoulderY},
			Hip:      pose.Point{X: profile.HipX, Y: profile.HipY},
			Knee:     pose.Point{X: profile.KneeX, Y: profile.KneeY},
			Ankle:    pose.Point{X: profile.AnkleX, Y: profile.AnkleY},
		})
	}

	if err := h.store.Settings().Set(store.SettingActiveProfile, profile.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record active profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}
