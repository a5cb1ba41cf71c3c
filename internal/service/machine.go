package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"machineshop/internal/model"
)

const maxRating = 5

// MachineInput carries create and update payloads. Nil fields are absent:
// required on create, left unchanged on update.
type MachineInput struct {
	Name        *string  `json:"name" yaml:"name"`
	Price       *float64 `json:"price" yaml:"price"`
	Description *string  `json:"description" yaml:"description"`
	Rating      *float64 `json:"rating" yaml:"rating"`
	Quantity    *int     `json:"quantity" yaml:"quantity"`
	Image       *string  `json:"image" yaml:"image"`
}

type MachineService struct {
	db *gorm.DB
}

func NewMachineService(db *gorm.DB) *MachineService {
	return &MachineService{db: db}
}

func (s *MachineService) List(ctx context.Context) ([]model.Machine, error) {
	machines := []model.Machine{}
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("query machines: %w", err)
	}
	return machines, nil
}

func (s *MachineService) Get(ctx context.Context, id string) (*model.Machine, error) {
	if !validID(id) {
		return nil, invalid("id", "Invalid machine ID format")
	}
	return s.get(ctx, id)
}

func (s *MachineService) get(ctx context.Context, id string) (*model.Machine, error) {
	var m model.Machine
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, fmt.Errorf("get machine: %w", err)
	}
	return &m, nil
}

func (s *MachineService) Create(ctx context.Context, in MachineInput) (*model.Machine, error) {
	switch {
	case in.Name == nil || strings.TrimSpace(*in.Name) == "":
		return nil, invalid("name", "name is required")
	case in.Price == nil:
		return nil, invalid("price", "price is required")
	case in.Quantity == nil:
		return nil, invalid("quantity", "quantity is required")
	}
	if err := validateMachine(in); err != nil {
		return nil, err
	}

	m := model.Machine{}
	applyMachine(&m, in)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert machine: %w", err)
	}
	return &m, nil
}

func (s *MachineService) Update(ctx context.Context, id string, in MachineInput) (*model.Machine, error) {
	if !validID(id) {
		return nil, invalid("id", "Invalid machine ID format")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name", "name must not be empty")
	}
	if err := validateMachine(in); err != nil {
		return nil, err
	}

	updates := machineUpdates(in)
	if len(updates) == 0 {
		return s.get(ctx, id)
	}
	updates["updated_at"] = time.Now()

	res := s.db.WithContext(ctx).Model(&model.Machine{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update machine: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrMachineNotFound
	}
	return s.get(ctx, id)
}

func (s *MachineService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return invalid("id", "Invalid machine ID format")
	}
	res := s.db.WithContext(ctx).Delete(&model.Machine{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete machine: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMachineNotFound
	}
	return nil
}

func validateMachine(in MachineInput) error {
	if in.Price != nil && *in.Price < 0 {
		return invalid("price", "price must not be negative")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > maxRating) {
		return invalid("rating", "rating must be between 0 and %d", maxRating)
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return invalid("quantity", "quantity must not be negative")
	}
	return nil
}

func applyMachine(m *model.Machine, in MachineInput) {
	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		m.Price = *in.Price
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Rating != nil {
		m.Rating = *in.Rating
	}
	if in.Quantity != nil {
		m.Quantity = *in.Quantity
	}
	if in.Image != nil {
		m.Image = *in.Image
	}
}

// machineUpdates uses a column map so zero values (quantity 0, empty
// description) are written rather than skipped.
func machineUpdates(in MachineInput) map[string]any {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Rating != nil {
		updates["rating"] = *in.Rating
	}
	if in.Quantity != nil {
		updates["quantity"] = *in.Quantity
	}
	if in.Image != nil {
		updates["image"] = *in.Image
	}
	return updates
}
