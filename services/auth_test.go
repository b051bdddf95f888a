package services

import (
	"errors"
	"testing"

	"kasif-platform/models"

	"golang.org/x/crypto/bcrypt"
)

func TestStudentLoginState(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("gizli"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name     string
		status   models.StudentStatus
		password string
		wantErr  error
	}{
		{name: "approved with correct password", status: models.StudentStatusApproved, password: "gizli"},
		{name: "approved with wrong password", status: models.StudentStatusApproved, password: "yanlis", wantErr: ErrWrongCredentials},
		{name: "pending with correct password", status: models.StudentStatusPending, password: "gizli", wantErr: ErrNotApproved},
		// Wrong password on a pending account must not reveal the pending state.
		{name: "pending with wrong password", status: models.StudentStatusPending, password: "yanlis", wantErr: ErrWrongCredentials},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			student := &models.Student{PasswordHash: string(hash), Status: tc.status}
			err := studentLoginState(student, tc.password)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
