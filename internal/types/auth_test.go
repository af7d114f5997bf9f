//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		request RegisterRequest
		wantErr bool
		errTag  string
	}{
		{
			name: "valid request",
			request: RegisterRequest{
				FullName: "Jane Doe", Email: "jane@example.com",
				Password: "secret1", ConfirmPassword: "secret1",
			},
		},
		{
			name: "missing name",
			request: RegisterRequest{
				Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: true,
			errTag:  "required",
		},
		{
			name: "invalid email format",
			request: RegisterRequest{
				FullName: "Jane", Email: "not-an-email",
				Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: true,
			errTag:  "email",
		},
		{
			name: "password too short",
			request: RegisterRequest{
				FullName: "Jane", Email: "jane@example.com",
				Password: "pw", ConfirmPassword: "pw",
			},
			wantErr: true,
			errTag:  "min",
		},
		{
			name: "confirmation mismatch",
			request: RegisterRequest{
				FullName: "Jane", Email: "jane@example.com",
				Password: "secret1", ConfirmPassword: "secret2",
			},
			wantErr: true,
			errTag:  "eqfield",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.errTag, verrs[0].Tag())
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Email: "jane@example.com", Password: "x"}
	assert.NoError(t, req.Validate())

	req.Email = ""
	assert.Error(t, req.Validate())
}

func TestUser_JSONOmitsNothingSensitive(t *testing.T) {
	u := User{
		ID:        7,
		UID:       uuid.New(),
		Email:     "jane@example.com",
		FullName:  "Jane",
		CreatedAt: time.Now(),
		IsActive:  true,
	}
	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"full_name":"Jane"`)
}
