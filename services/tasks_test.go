package services

import (
	"errors"
	"testing"
	"time"

	"kasif-platform/models"
)

func TestApplySubmit(t *testing.T) {
	tests := []struct {
		name      string
		weekday   time.Weekday
		completed []string
		pending   []string
		wantErr   error
	}{
		{name: "Friday accepted", weekday: time.Friday},
		{name: "Thursday refused", weekday: time.Thursday, wantErr: ErrWrongWeekday},
		{name: "Saturday refused", weekday: time.Saturday, wantErr: ErrWrongWeekday},
		{name: "already completed", weekday: time.Friday, completed: []string{"t1"}, wantErr: ErrTaskAlreadyDone},
		{name: "already pending", weekday: time.Friday, pending: []string{"t1"}, wantErr: ErrTaskAlreadyPending},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &models.Student{CompletedTasks: tc.completed, PendingTasks: tc.pending}
			err := applySubmit(s, "t1", tc.weekday)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !containsID(s.PendingTasks, "t1") {
				t.Errorf("PendingTasks = %v, want t1 present", s.PendingTasks)
			}
		})
	}
}

func TestApplyApprove(t *testing.T) {
	task := &models.WeeklyTask{ID: "t1", Title: "Haftalık Sure", Reward: 100, Currency: models.CurrencyGP}

	t.Run("credits exactly once", func(t *testing.T) {
		s := &models.Student{Points: 50, PendingTasks: []string{"t1"}}
		if err := applyApprove(s, task); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Points != 150 {
			t.Errorf("Points = %d, want 150", s.Points)
		}
		if containsID(s.PendingTasks, "t1") {
			t.Errorf("task still pending after approval")
		}
		if !containsID(s.CompletedTasks, "t1") {
			t.Errorf("task not in completed set")
		}

		// Re-approving a resolved submission is impossible.
		if err := applyApprove(s, task); !errors.Is(err, ErrNotFound) {
			t.Fatalf("second approve err = %v, want ErrNotFound", err)
		}
		if s.Points != 150 {
			t.Errorf("Points = %d after second approve, want 150", s.Points)
		}
	})

	t.Run("not pending refused", func(t *testing.T) {
		s := &models.Student{}
		if err := applyApprove(s, task); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestApplyReject(t *testing.T) {
	s := &models.Student{Points: 50, PendingTasks: []string{"t1"}}
	if err := applyReject(s, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Points != 50 {
		t.Errorf("Points = %d, want 50 (no ledger effect)", s.Points)
	}
	if containsID(s.PendingTasks, "t1") {
		t.Errorf("task still pending after rejection")
	}
	if containsID(s.CompletedTasks, "t1") {
		t.Errorf("rejected task landed in completed set")
	}

	// Rejected tasks may be resubmitted on a Friday.
	if err := applySubmit(s, "t1", time.Friday); err != nil {
		t.Errorf("resubmit after rejection: %v", err)
	}
}

func TestRemoveID(t *testing.T) {
	got := removeID([]string{"a", "b", "a", "c"}, "a")
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("removeID = %v, want [b c]", got)
	}
}
