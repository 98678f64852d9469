package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func testProfile(name string) *Profile {
	return &Profile{
		ID:        uuid.NewString(),
		Name:      name,
		ShoulderX: 330, ShoulderY: 90,
		HipX: 322, HipY: 210,
		KneeX: 320, KneeY: 330,
		AnkleX: 320, AnkleY: 440,
	}
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)

	p := testProfile("garage-side-view")
	if err := s.Profiles().Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Profiles().GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "garage-side-view" {
		t.Errorf("Name = %q, want %q", got.Name, "garage-side-view")
	}
	if got.KneeX != 320 || got.KneeY != 330 {
		t.Errorf("knee point = (%f, %f), want (320, 330)", got.KneeX, got.KneeY)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	byName, err := s.Profiles().GetByName("garage-side-view")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if byName.ID != p.ID {
		t.Errorf("GetByName() ID = %q, want %q", byName.ID, p.ID)
	}
}

func TestProfileRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Profiles().GetByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Profiles().GetByName("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByName() error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_DuplicateName(t *testing.T) {
	s := newTestStore(t)

	if err := s.Profiles().Create(testProfile("same")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Profiles().Create(testProfile("same")); err == nil {
		t.Error("Create() with duplicate name should fail")
	}
}

func TestProfileRepository_List(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"one", "two", "three"} {
		if err := s.Profiles().Create(testProfile(name)); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}

	profiles, err := s.Profiles().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(profiles) != 3 {
		t.Errorf("len(List()) = %d, want 3", len(profiles))
	}
}

func TestProfileRepository_Update(t *testing.T) {
	s := newTestStore(t)

	p := testProfile("bedroom")
	if err := s.Profiles().Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	p.HipX = 400
	p.HipY = 250
	if err := s.Profiles().Update(p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.Profiles().GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.HipX != 400 || got.HipY != 250 {
		t.Errorf("hip point = (%f, %f), want (400, 250)", got.HipX, got.HipY)
	}

	missing := testProfile("ghost")
	if err := s.Profiles().Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() of missing profile error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_Delete(t *testing.T) {
	s := newTestStore(t)

	p := testProfile("to-delete")
	if err := s.Profiles().Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Profiles().Delete(p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Profiles().GetByID(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Profiles().Delete(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestSettingsRepository(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Settings().Get(SettingCameraID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() of unset key error = %v, want ErrNotFound", err)
	}

	if err := s.Settings().Set(SettingCameraID, "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Settings().Set(SettingMirror, "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Settings().Get(SettingCameraID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "1" {
		t.Errorf("Get() = %q, want %q", got, "1")
	}

	// Overwrite
	if err := s.Settings().Set(SettingCameraID, "2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if got, _ := s.Settings().Get(SettingCameraID); got != "2" {
		t.Errorf("Get() after overwrite = %q, want %q", got, "2")
	}

	all, err := s.Settings().All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(All()) = %d, want 2", len(all))
	}
	if all[SettingMirror] != "true" {
		t.Errorf("All()[mirror] = %q, want %q", all[SettingMirror], "true")
	}
}
