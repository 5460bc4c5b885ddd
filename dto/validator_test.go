package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: RegisterRequest{
				Email:    "ana@example.com",
				Username: "anasm",
				Password: "SecurePass123!",
			},
			wantErr: false,
		},
		{
			name: "bad email",
			req: RegisterRequest{
				Email:    "not-an-email",
				Username: "anasm",
				Password: "SecurePass123!",
			},
			wantErr: true,
		},
		{
			name: "username too short",
			req: RegisterRequest{
				Email:    "ana@example.com",
				Username: "an",
				Password: "SecurePass123!",
			},
			wantErr: true,
		},
		{
			name: "password without special char",
			req: RegisterRequest{
				Email:    "ana@example.com",
				Username: "anasm",
				Password: "SecurePass123",
			},
			wantErr: true,
		},
		{
			name: "password without uppercase",
			req: RegisterRequest{
				Email:    "ana@example.com",
				Username: "anasm",
				Password: "securepass123!",
			},
			wantErr: true,
		},
		{
			name: "password too short",
			req: RegisterRequest{
				Email:    "ana@example.com",
				Username: "anasm",
				Password: "Se1!",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	err := RegisterRequest{
		Email:    "not-an-email",
		Username: "anasm",
		Password: "weak",
	}.Validate()
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	require.Len(t, formatted, 2)
	assert.Equal(t, "Email", formatted[0].Field)
	assert.Equal(t, "Invalid email format", formatted[0].Message)
	assert.Equal(t, "Password", formatted[1].Field)
	assert.Contains(t, formatted[1].Message, "uppercase")
}

func TestCreateValidationErrorResponse(t *testing.T) {
	err := LoginRequest{}.Validate()
	require.Error(t, err)

	resp := CreateValidationErrorResponse(err)
	assert.Equal(t, 400, resp.Code)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Len(t, resp.Errors, 2)
}
