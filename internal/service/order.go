package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"gorm.io/gorm"

	"machineshop/internal/model"
)

type OrderStage string

const (
	StageReceived         OrderStage = "received"
	StageValidated        OrderStage = "validated"
	StageStockChecked     OrderStage = "stock_checked"
	StageClientReconciled OrderStage = "client_reconciled"
	StagePersisted        OrderStage = "persisted"
	StageCommitted        OrderStage = "committed"
)

// OrderInput is a placement request. Quantity and TotalPrice are pointers so
// absent values can be told apart from zero.
type OrderInput struct {
	ClientName   string   `json:"clientName"`
	MobileNumber string   `json:"mobileNumber"`
	Email        string   `json:"email,omitempty"`
	MachineID    string   `json:"machineId"`
	MachineName  string   `json:"machineName"`
	Quantity     *float64 `json:"quantity"`
	TotalPrice   *float64 `json:"totalPrice"`
	Address      string   `json:"address"`
}

type OrderFilter struct {
	ClientName   string
	MobileNumber string
	Email        string
	Newest       bool
}

type stockReserver interface {
	Reserve(ctx context.Context, machineID string, quantity int) (*Reservation, error)
}

type clientReconciler interface {
	Reconcile(ctx context.Context, in ReconcileInput) (*model.Client, error)
	FindByEmail(ctx context.Context, email string) (*model.Client, error)
}

type OrderService struct {
	db      *gorm.DB
	stock   stockReserver
	clients clientReconciler
}

func NewOrderService(db *gorm.DB, stock stockReserver, clients clientReconciler) *OrderService {
	return &OrderService{db: db, stock: stock, clients: clients}
}

// Place runs the order pipeline: validate, reserve stock, reconcile the
// client, persist the order. Failures after the reservation leave the
// decrement applied and come back as *StageError.
func (s *OrderService) Place(ctx context.Context, in OrderInput) (*model.Order, error) {
	quantity, err := validateOrder(&in)
	if err != nil {
		return nil, err
	}

	reservation, err := s.stock.Reserve(ctx, in.MachineID, quantity)
	if err != nil {
		return nil, err
	}

	_, err = s.clients.Reconcile(ctx, ReconcileInput{
		Email:    in.Email,
		Mobile:   in.MobileNumber,
		Name:     in.ClientName,
		Address:  in.Address,
		Quantity: quantity,
	})
	if err != nil {
		return nil, s.fail(StageStockChecked, reservation, err)
	}

	order := model.Order{
		ClientName:   in.ClientName,
		MobileNumber: in.MobileNumber,
		MachineID:    reservation.MachineID,
		MachineName:  reservation.MachineName,
		Quantity:     quantity,
		TotalPrice:   *in.TotalPrice,
		Address:      in.Address,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, s.fail(StageClientReconciled, reservation, fmt.Errorf("insert order: %w", err))
	}
	order.Machine = &model.MachineRef{
		ID:    reservation.MachineID,
		Name:  reservation.MachineName,
		Price: reservation.Price,
	}

	slog.Info("order placed",
		"order_id", order.ID,
		"machine_id", order.MachineID,
		"quantity", order.Quantity,
		"remaining", reservation.Remaining,
	)
	return &order, nil
}

func (s *OrderService) fail(stage OrderStage, r *Reservation, err error) error {
	slog.Error("order failed after stock reservation",
		"stage", stage,
		"machine_id", r.MachineID,
		"quantity", r.Quantity,
		"error", err,
	)
	return &StageError{Stage: stage, MachineID: r.MachineID, Quantity: r.Quantity, Err: err}
}

func validateOrder(in *OrderInput) (int, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	in.MachineID = strings.TrimSpace(in.MachineID)
	in.MachineName = strings.TrimSpace(in.MachineName)
	in.Address = strings.TrimSpace(in.Address)
	in.Email = normalizeEmail(in.Email)

	switch {
	case in.ClientName == "":
		return 0, invalid("clientName", "clientName is required")
	case in.MobileNumber == "":
		return 0, invalid("mobileNumber", "mobileNumber is required")
	case in.MachineID == "":
		return 0, invalid("machineId", "machineId is required")
	case in.MachineName == "":
		return 0, invalid("machineName", "machineName is required")
	case in.Quantity == nil:
		return 0, invalid("quantity", "quantity is required")
	case in.TotalPrice == nil:
		return 0, invalid("totalPrice", "totalPrice is required")
	case in.Address == "":
		return 0, invalid("address", "address is required")
	}

	if !validMobile(in.MobileNumber) {
		return 0, invalid("mobileNumber", "Invalid mobile number. Must be 10 digits.")
	}
	if !validID(in.MachineID) {
		return 0, invalid("machineId", "Invalid machine ID format")
	}
	q := *in.Quantity
	if q <= 0 || q != math.Trunc(q) || q > math.MaxInt32 {
		return 0, invalid("quantity", "quantity must be a positive integer")
	}
	if *in.TotalPrice < 0 || math.IsNaN(*in.TotalPrice) {
		return 0, invalid("totalPrice", "totalPrice must not be negative")
	}
	if in.Email != "" && !validEmail(in.Email) {
		return 0, invalid("email", "Invalid email format")
	}
	return int(q), nil
}

func (s *OrderService) List(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	q := s.db.WithContext(ctx).Model(&model.Order{})

	if name := strings.TrimSpace(f.ClientName); name != "" {
		q = q.Where(`client_key LIKE ? ESCAPE '\'`, likePattern(name))
	}
	if mobile := strings.TrimSpace(f.MobileNumber); mobile != "" {
		q = q.Where("mobile_number = ?", mobile)
	}
	if email := normalizeEmail(f.Email); email != "" {
		client, err := s.clients.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return []model.Order{}, nil
			}
			return nil, err
		}
		q = q.Where("(client_name = ? OR mobile_number = ?)", client.Name, client.Mobile)
	}

	if f.Newest {
		q = q.Order("created_at DESC, id DESC")
	} else {
		q = q.Order("created_at, id")
	}

	orders := []model.Order{}
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	if err := s.attachMachines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachMachines resolves the machine of each order with one query. Orders
// whose machine no longer exists keep a nil Machine.
func (s *OrderService) attachMachines(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		if !seen[o.MachineID] {
			seen[o.MachineID] = true
			ids = append(ids, o.MachineID)
		}
	}

	var refs []model.MachineRef
	err := s.db.WithContext(ctx).Model(&model.Machine{}).
		Select("id", "name", "price").
		Where("id IN ?", ids).
		Find(&refs).Error
	if err != nil {
		return fmt.Errorf("query order machines: %w", err)
	}

	byID := make(map[string]model.MachineRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}
	for i := range orders {
		if ref, ok := byID[orders[i].MachineID]; ok {
			orders[i].Machine = &ref
		}
	}
	return nil
}

// ByClientEmail lists the orders of a registered client. Unlike List with an
// email filter, an unknown email is an error.
func (s *OrderService) ByClientEmail(ctx context.Context, email string) ([]model.Order, error) {
	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, OrderFilter{Email: client.Email, Newest: true})
}

func (s *OrderService) ByMobile(ctx context.Context, mobile string) ([]model.Order, error) {
	return s.List(ctx, OrderFilter{MobileNumber: mobile, Newest: true})
}
