package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"machineshop/internal/model"
)

const minPasswordLen = 6

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Address  string `json:"address"`
}

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.Client, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Address = strings.TrimSpace(in.Address)

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	client := model.Client{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Mobile:       in.Mobile,
		Address:      in.Address,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}

	return &client, nil
}

func validateRegistration(in RegisterInput) error {
	switch {
	case in.Name == "":
		return invalid("name", "name is required")
	case in.Email == "":
		return invalid("email", "email is required")
	case in.Password == "":
		return invalid("password", "password is required")
	case in.Mobile == "":
		return invalid("mobile", "mobile is required")
	case in.Address == "":
		return invalid("address", "address is required")
	case !validEmail(in.Email):
		return invalid("email", "Invalid email format")
	case !validMobile(in.Mobile):
		return invalid("mobile", "Mobile number must be 10 digits")
	case len(in.Password) < minPasswordLen:
		return invalid("password", "Password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.Client, error) {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	switch {
	case email == "":
		return nil, invalid("email", "Email and password are required")
	case password == "":
		return nil, invalid("password", "Email and password are required")
	}

	var client model.Client
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &client, nil
}
