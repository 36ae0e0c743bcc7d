package store

import (
	"errors"
	"testing"
)

func TestSettingsRepository_SetAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if err := repo.Set("association_gate_px", "50"); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	got, err := repo.Get("association_gate_px")
	if err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if got != "50" {
		t.Errorf("value mismatch: got %q, want %q", got, "50")
	}
}

func TestSettingsRepository_Overwrite(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if err := repo.Set("max_speed_kmh", "30"); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if err := repo.Set("max_speed_kmh", "25"); err != nil {
		t.Fatalf("failed to overwrite value: %v", err)
	}

	got, err := repo.Get("max_speed_kmh")
	if err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if got != "25" {
		t.Errorf("value mismatch: got %q, want %q", got, "25")
	}
}

func TestSettingsRepository_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	_, err := repo.Get("no-such-key")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("getting a missing key should return ErrNotFound, got %v", err)
	}
}
