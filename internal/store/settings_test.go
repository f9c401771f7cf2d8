package store

import (
	"errors"
	"testing"
)

func TestSettingsRepository(t *testing.T) {
	s := newTestStore(t)

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		_, err := s.Settings().Get(SettingBlinkThreshold)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := s.Settings().Set(SettingBlinkThreshold, "0.7"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := s.Settings().Get(SettingBlinkThreshold)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "0.7" {
			t.Errorf("Get() = %q, want 0.7", got)
		}
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		if err := s.Settings().Set(SettingBlinkThreshold, "0.8"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := s.Settings().Get(SettingBlinkThreshold)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "0.8" {
			t.Errorf("Get() = %q, want 0.8", got)
		}
	})

	t.Run("all returns every key", func(t *testing.T) {
		if err := s.Settings().Set(SettingCooldownMs, "500"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		all, err := s.Settings().All()
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if all[SettingBlinkThreshold] != "0.8" || all[SettingCooldownMs] != "500" {
			t.Errorf("All() = %v", all)
		}
	})
}
