package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "plain address", email: "jane@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing domain", email: "jane@", wantErr: true},
		{name: "display name form is rejected", email: "Jane <jane@example.com>", wantErr: true},
		{name: "no at sign", email: "jane.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
}

func TestUser_Validate(t *testing.T) {
	u := User{Email: "jane@example.com", Name: "Jane", PasswordHash: "$2a$10$hash"}
	assert.NoError(t, u.Validate())

	u.Name = "   "
	err := u.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
