package services

import (
	"errors"
	"testing"

	"kasif-platform/models"
)

func TestApplyRegistration(t *testing.T) {
	in := RegistrationInput{
		Name:        "Ayşe Yılmaz",
		Username:    "Ayşe",
		Password:    "gizli",
		ClassCode:   "1453",
		ParentPhone: "05551234567",
	}

	t.Run("unknown class code creates no record", func(t *testing.T) {
		s, err := applyRegistration(in, "ayse", "hash", false, false, false)
		if !errors.Is(err, ErrUnknownClassCode) {
			t.Fatalf("err = %v, want ErrUnknownClassCode", err)
		}
		if s != nil {
			t.Errorf("record built despite unknown class code: %+v", s)
		}
	})

	t.Run("taken username creates no record", func(t *testing.T) {
		s, err := applyRegistration(in, "ayse", "hash", true, true, false)
		if !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("err = %v, want ErrUsernameTaken", err)
		}
		if s != nil {
			t.Errorf("record built despite taken username: %+v", s)
		}
	})

	t.Run("self registration starts pending with zero balances", func(t *testing.T) {
		s, err := applyRegistration(in, "ayse", "hash", true, false, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != models.StudentStatusPending {
			t.Errorf("Status = %s, want pending", s.Status)
		}
		if s.Points != 0 || s.NamazPoints != 0 {
			t.Errorf("balances GP=%d NP=%d, want 0/0", s.Points, s.NamazPoints)
		}
		if s.Inventory == nil || s.Badges == nil || s.PendingItems == nil || s.Prayers == nil {
			t.Errorf("collections not initialized: %+v", s)
		}
		if s.Username != "ayse" || s.ClassCode != "1453" {
			t.Errorf("identity fields wrong: %+v", s)
		}
	})

	t.Run("instructor created students skip the gate", func(t *testing.T) {
		s, err := applyRegistration(in, "ayse", "hash", true, false, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != models.StudentStatusApproved {
			t.Errorf("Status = %s, want approved", s.Status)
		}
	})
}

func TestRequireOwnClass(t *testing.T) {
	instructor := &models.Instructor{ClassCodes: []string{"1453", "1071"}}

	if err := RequireOwnClass(instructor, &models.Student{ClassCode: "1071"}); err != nil {
		t.Errorf("own class refused: %v", err)
	}
	if err := RequireOwnClass(instructor, &models.Student{ClassCode: "2023"}); !errors.Is(err, ErrForeignClass) {
		t.Errorf("err = %v, want ErrForeignClass", err)
	}
	if err := RequireOwnClass(&models.Instructor{}, &models.Student{ClassCode: "1453"}); !errors.Is(err, ErrForeignClass) {
		t.Errorf("empty roster err = %v, want ErrForeignClass", err)
	}
}
