package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"machineshop/internal/model"
)

// Reservation is the result of a successful stock decrement.
type Reservation struct {
	MachineID   string
	MachineName string
	Price       float64
	Quantity    int
	Remaining   int
}

// StockLedger owns Machine.quantity during order placement.
type StockLedger struct {
	db *gorm.DB
}

func NewStockLedger(db *gorm.DB) *StockLedger {
	return &StockLedger{db: db}
}

// Reserve decrements the machine's stock by quantity in a single conditional
// UPDATE, so concurrent reservations can never drive quantity below zero.
func (l *StockLedger) Reserve(ctx context.Context, machineID string, quantity int) (*Reservation, error) {
	if quantity <= 0 {
		return nil, invalid("quantity", "quantity must be a positive integer")
	}

	res := l.db.WithContext(ctx).Model(&model.Machine{}).
		Where("id = ? AND quantity >= ?", machineID, quantity).
		UpdateColumns(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", quantity),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("decrement stock: %w", res.Error)
	}

	var m model.Machine
	if err := l.db.WithContext(ctx).First(&m, "id = ?", machineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, fmt.Errorf("get machine: %w", err)
	}

	if res.RowsAffected == 0 {
		return nil, &InsufficientStockError{
			MachineID: machineID,
			Requested: quantity,
			Available: m.Quantity,
		}
	}

	return &Reservation{
		MachineID:   m.ID,
		MachineName: m.Name,
		Price:       m.Price,
		Quantity:    quantity,
		Remaining:   m.Quantity,
	}, nil
}
