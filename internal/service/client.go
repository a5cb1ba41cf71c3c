package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"machineshop/internal/model"
)

// unusablePasswordHash is stored for clients created during order placement.
// It is not a bcrypt hash, so every login attempt against it fails.
const unusablePasswordHash = "!"

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	clients := []model.Client{}
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	if !validID(id) {
		return nil, invalid("id", "Invalid client ID format")
	}
	var client model.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &client, nil
}

// Delete removes a client and returns the deleted record. Orders placed by the
// client are kept.
func (s *ClientService) Delete(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Delete(&model.Client{}, "id = ?", id)
	if res.Error != nil {
		return nil, fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrClientNotFound
	}
	return client, nil
}

func (s *ClientService) FindByEmail(ctx context.Context, email string) (*model.Client, error) {
	var client model.Client
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("get client by email: %w", err)
	}
	return &client, nil
}

// LookupResult is the outcome of the two-key client lookup.
type LookupResult struct {
	Found  bool
	Client *model.Client
}

// Lookup tries email first (when non-empty), then mobile.
func (s *ClientService) Lookup(ctx context.Context, email, mobile string) (LookupResult, error) {
	if email = normalizeEmail(email); email != "" {
		client, err := s.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return LookupResult{Found: true, Client: client}, nil
		case !errors.Is(err, ErrNotFound):
			return LookupResult{}, err
		}
	}

	if mobile == "" {
		return LookupResult{}, nil
	}
	var client model.Client
	err := s.db.WithContext(ctx).Where("mobile = ?", mobile).Order("created_at, id").First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LookupResult{}, nil
		}
		return LookupResult{}, fmt.Errorf("get client by mobile: %w", err)
	}
	return LookupResult{Found: true, Client: &client}, nil
}

type ReconcileInput struct {
	Email    string
	Mobile   string
	Name     string
	Address  string
	Quantity int
}

// Reconcile finds the ordering client by email, then mobile, and adds quantity
// to its running machine counter. Unknown clients are created with the
// counter set to quantity.
func (s *ClientService) Reconcile(ctx context.Context, in ReconcileInput) (*model.Client, error) {
	if in.Quantity <= 0 {
		return nil, invalid("quantity", "quantity must be a positive integer")
	}

	email := normalizeEmail(in.Email)
	if email == "" {
		email = placeholderEmail(in.Name, in.Mobile)
	}

	found, err := s.Lookup(ctx, in.Email, in.Mobile)
	if err != nil {
		return nil, err
	}
	if found.Found {
		return s.incrementMachines(ctx, found.Client.ID, in.Quantity)
	}

	client, err := s.createFromOrder(ctx, in, email)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, ErrConflict) {
		return nil, err
	}

	// The address was taken after the lookup, by a concurrent order or a
	// registered client. Count the order against that row.
	found, err = s.Lookup(ctx, email, in.Mobile)
	if err != nil {
		return nil, err
	}
	if !found.Found {
		return nil, fmt.Errorf("reconcile client %q: %w", email, ErrConflict)
	}
	return s.incrementMachines(ctx, found.Client.ID, in.Quantity)
}

func (s *ClientService) incrementMachines(ctx context.Context, id string, quantity int) (*model.Client, error) {
	res := s.db.WithContext(ctx).Model(&model.Client{}).
		Where("id = ?", id).
		UpdateColumn("machine", gorm.Expr("machine + ?", quantity))
	if res.Error != nil {
		return nil, fmt.Errorf("increment client machines: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrClientNotFound
	}

	var client model.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("reload client: %w", err)
	}
	return &client, nil
}

func (s *ClientService) createFromOrder(ctx context.Context, in ReconcileInput, email string) (*model.Client, error) {
	client := model.Client{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: unusablePasswordHash,
		Mobile:       in.Mobile,
		Address:      strings.TrimSpace(in.Address),
		Machine:      in.Quantity,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return &client, nil
}
