package services

import (
	"errors"
	"testing"

	"kasif-platform/models"
)

func TestCredit(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency models.Currency
		wantGP   int64
		wantNP   int64
	}{
		{name: "GP credit", amount: 50, currency: models.CurrencyGP, wantGP: 150, wantNP: 200},
		{name: "NP credit", amount: 20, currency: models.CurrencyNP, wantGP: 100, wantNP: 220},
		{name: "zero credit", amount: 0, currency: models.CurrencyGP, wantGP: 100, wantNP: 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &models.Student{Points: 100, NamazPoints: 200}
			credit(s, tc.amount, tc.currency)
			if s.Points != tc.wantGP {
				t.Errorf("Points = %d, want %d", s.Points, tc.wantGP)
			}
			if s.NamazPoints != tc.wantNP {
				t.Errorf("NamazPoints = %d, want %d", s.NamazPoints, tc.wantNP)
			}
		})
	}
}

func TestDebit(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency models.Currency
		wantErr  error
		wantGP   int64
		wantNP   int64
	}{
		{name: "GP debit within balance", amount: 100, currency: models.CurrencyGP, wantGP: 400, wantNP: 200},
		{name: "GP debit exact balance", amount: 500, currency: models.CurrencyGP, wantGP: 0, wantNP: 200},
		{name: "GP debit over balance", amount: 750, currency: models.CurrencyGP, wantErr: ErrInsufficientGP, wantGP: 500, wantNP: 200},
		{name: "NP debit within balance", amount: 200, currency: models.CurrencyNP, wantGP: 500, wantNP: 0},
		{name: "NP debit over balance", amount: 201, currency: models.CurrencyNP, wantErr: ErrInsufficientNP, wantGP: 500, wantNP: 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &models.Student{Points: 500, NamazPoints: 200}
			err := debit(s, tc.amount, tc.currency)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Points != tc.wantGP {
				t.Errorf("Points = %d, want %d", s.Points, tc.wantGP)
			}
			if s.NamazPoints != tc.wantNP {
				t.Errorf("NamazPoints = %d, want %d", s.NamazPoints, tc.wantNP)
			}
		})
	}
}

func TestDebitNeverCrossesCurrencies(t *testing.T) {
	// A large GP balance must not cover an NP debit.
	s := &models.Student{Points: 10000, NamazPoints: 5}
	if err := debit(s, 10, models.CurrencyNP); !errors.Is(err, ErrInsufficientNP) {
		t.Fatalf("err = %v, want ErrInsufficientNP", err)
	}
	if s.Points != 10000 || s.NamazPoints != 5 {
		t.Errorf("balances changed on refused debit: GP=%d NP=%d", s.Points, s.NamazPoints)
	}
}
