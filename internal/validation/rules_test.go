package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/guardianchain/capsule-api/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	wrapped := WrapValidationError(fmt.Errorf("email: must be a valid email address"))
	assert.Error(t, wrapped)
	assert.True(t, apperrors.Is(wrapped, apperrors.ErrInvalidInput))
	assert.Contains(t, wrapped.Error(), "must be a valid email address")
}

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{"valid password", "Secret123", false},
		{"too short", "Ab1", true},
		{"missing uppercase", "secret123", true},
		{"missing lowercase", "SECRET123", true},
		{"missing number", "SecretPass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.password)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordStrengthNonString(t *testing.T) {
	rule := PasswordStrength{MinLength: 8}
	assert.Error(t, rule.Validate(42))
}

func TestEmail(t *testing.T) {
	tests := []struct {
		email       string
		expectError bool
	}{
		{"user@example.com", false},
		{"user.name+tag@sub.example.org", false},
		{"not-an-email", true},
		{"@example.com", true},
		{"user@", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := Email.Validate(tt.email)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("hello"))
	assert.Error(t, NotBlank.Validate(""))
	assert.Error(t, NotBlank.Validate("   "))
}
