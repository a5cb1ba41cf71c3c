package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"machineshop/internal/model"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	c, err := auth.Register(ctx, RegisterInput{
		Name:     "  Asha Rao ",
		Email:    " Asha@Example.COM ",
		Password: "secret1",
		Mobile:   "9999999999",
		Address:  "12 Mill Road",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", c.Name)
	assert.Equal(t, "asha@example.com", c.Email)
	assert.NotEqual(t, "secret1", c.PasswordHash)
	assert.Equal(t, 0, c.Machine)

	got, err := auth.Authenticate(ctx, "ASHA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = auth.Authenticate(ctx, "asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, "", "secret1")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	in := RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1", Mobile: "9999999999", Address: "here"}
	_, err := auth.Register(ctx, in)
	require.NoError(t, err)

	in.Email = "A@X.COM"
	_, err = auth.Register(ctx, in)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)

	var n int64
	require.NoError(t, db.Model(&model.Client{}).Where("email = ?", "a@x.com").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestAuthenticateReportsMissingField(t *testing.T) {
	auth := NewAuthService(newTestDB(t))

	_, err := auth.Authenticate(ctx, "a@x.com", " ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	_, err = auth.Authenticate(ctx, "", "secret1")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestRegisterValidation(t *testing.T) {
	auth := NewAuthService(newTestDB(t))
	base := RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1", Mobile: "9999999999", Address: "here"}

	tests := []struct {
		name  string
		edit  func(*RegisterInput)
		field string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = " " }, "name"},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, "email"},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"bad mobile", func(in *RegisterInput) { in.Mobile = "12345" }, "mobile"},
		{"short password", func(in *RegisterInput) { in.Password = "abc" }, "password"},
		{"missing address", func(in *RegisterInput) { in.Address = "" }, "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.edit(&in)
			_, err := auth.Register(ctx, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
