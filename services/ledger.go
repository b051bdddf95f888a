package services

import (
	"errors"
	"fmt"

	"kasif-platform/models"
)

// Precondition failures. Every rejected operation maps to one of these so the
// caller can show the user a specific reason; none of them leave side effects
// on the student record.
var (
	ErrInsufficientGP     = errors.New("insufficient GP balance")
	ErrInsufficientNP     = errors.New("insufficient NP balance")
	ErrOutOfStock         = errors.New("item is out of stock")
	ErrDuplicatePending   = errors.New("a pending request for this item already exists")
	ErrBadgeAlreadyHeld   = errors.New("student already holds this badge")
	ErrTaskAlreadyDone    = errors.New("task is already completed")
	ErrTaskAlreadyPending = errors.New("task is already awaiting approval")
	ErrWrongWeekday       = errors.New("tasks can only be submitted on Friday")
	ErrNotFound           = errors.New("record not found")
)

// Validation failures (registration and catalog management).
var (
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrUnknownClassCode = errors.New("class code does not belong to any instructor")
	ErrClassCodeTaken   = errors.New("class code already belongs to an instructor")
	ErrMissingField     = errors.New("required field is missing")
)

// Authentication results.
var (
	ErrWrongCredentials = errors.New("wrong username or password")
	ErrNotApproved      = errors.New("registration has not been approved yet")
	ErrForeignClass     = errors.New("student is not in one of your classes")
)

// credit adds amount to the student's balance in the given currency.
// Pure: mutates only the in-memory record.
func credit(s *models.Student, amount int64, cur models.Currency) {
	if cur == models.CurrencyNP {
		s.NamazPoints += amount
		return
	}
	s.Points += amount
}

// debit subtracts amount after a sufficiency check. Balances can never go
// negative: the error names the currency and the missing amount so the user
// knows what to do next.
func debit(s *models.Student, amount int64, cur models.Currency) error {
	if cur == models.CurrencyNP {
		if s.NamazPoints < amount {
			return fmt.Errorf("%w: need %d more NP", ErrInsufficientNP, amount-s.NamazPoints)
		}
		s.NamazPoints -= amount
		return nil
	}
	if s.Points < amount {
		return fmt.Errorf("%w: need %d more GP", ErrInsufficientGP, amount-s.Points)
	}
	s.Points -= amount
	return nil
}
