package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrMachineNotFound = fmt.Errorf("machine %w", ErrNotFound)
	ErrClientNotFound  = fmt.Errorf("client %w", ErrNotFound)
	ErrEmailTaken      = fmt.Errorf("email already registered: %w", ErrConflict)
)

// ValidationError reports malformed or missing input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError is returned by the stock ledger when a reservation
// asks for more units than the machine holds. Available is the quantity read
// after the rejected decrement.
type InsufficientStockError struct {
	MachineID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Only %d units available", e.Available)
}

// StageError marks a failure after stock was already reserved. The decrement
// is not rolled back.
type StageError struct {
	Stage     OrderStage
	MachineID string
	Quantity  int
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("order failed at %s (machine %s, quantity %d): %v", e.Stage, e.MachineID, e.Quantity, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
