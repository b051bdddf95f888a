package services

import (
	"errors"
	"testing"

	"kasif-platform/models"
)

func TestApplyAward(t *testing.T) {
	badge := &models.Badge{ID: "hafiz-adayi", Title: "Hafız Adayı", Currency: models.CurrencyGP, Value: 250}

	t.Run("grants badge and value once", func(t *testing.T) {
		s := &models.Student{Points: 100}
		if err := applyAward(s, badge); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.HasBadge("hafiz-adayi") {
			t.Errorf("badge not in set")
		}
		if s.Points != 350 {
			t.Errorf("Points = %d, want 350", s.Points)
		}

		if err := applyAward(s, badge); !errors.Is(err, ErrBadgeAlreadyHeld) {
			t.Fatalf("second award err = %v, want ErrBadgeAlreadyHeld", err)
		}
		if s.Points != 350 {
			t.Errorf("Points = %d after refused award, want 350", s.Points)
		}
	})

	t.Run("NP valued badge credits NP", func(t *testing.T) {
		np := &models.Badge{ID: "cemaat-yildizi", Currency: models.CurrencyNP, Value: 50}
		s := &models.Student{}
		if err := applyAward(s, np); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.NamazPoints != 50 || s.Points != 0 {
			t.Errorf("GP=%d NP=%d, want 0/50", s.Points, s.NamazPoints)
		}
	})
}

func TestApplyRevoke(t *testing.T) {
	badge := &models.Badge{ID: "hafiz-adayi", Currency: models.CurrencyGP, Value: 250}
	s := &models.Student{Points: 100}
	if err := applyAward(s, badge); err != nil {
		t.Fatalf("award: %v", err)
	}

	if err := applyRevoke(s, "hafiz-adayi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.HasBadge("hafiz-adayi") {
		t.Errorf("badge still held after revoke")
	}
	// Revoke never claws the granted points back.
	if s.Points != 350 {
		t.Errorf("Points = %d, want 350", s.Points)
	}

	if err := applyRevoke(s, "hafiz-adayi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second revoke err = %v, want ErrNotFound", err)
	}
}

func TestReawardAfterRevoke(t *testing.T) {
	// Revoke then award again stacks a second grant. Moderation decides when
	// that is appropriate; the ledger just follows the set membership.
	badge := &models.Badge{ID: "sampiyon", Currency: models.CurrencyGP, Value: 100}
	s := &models.Student{}
	if err := applyAward(s, badge); err != nil {
		t.Fatalf("first award: %v", err)
	}
	if err := applyRevoke(s, "sampiyon"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := applyAward(s, badge); err != nil {
		t.Fatalf("second award: %v", err)
	}
	if s.Points != 200 {
		t.Errorf("Points = %d, want 200", s.Points)
	}
}
