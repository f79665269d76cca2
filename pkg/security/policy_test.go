package security

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		have     model.Role
		required model.Role
		want     error
	}{
		{"admin on admin action", model.RoleAdmin, model.RoleAdmin, nil},
		{"admin on user action", model.RoleAdmin, model.RoleUser, nil},
		{"user on user action", model.RoleUser, model.RoleUser, nil},
		{"user on admin action", model.RoleUser, model.RoleAdmin, errs.ErrForbidden},
		{"unknown role", model.Role("superuser"), model.RoleUser, errs.ErrForbidden},
		{"empty role", "", model.RoleUser, errs.ErrForbidden},
		{"unknown requirement", model.RoleAdmin, model.Role("owner"), errs.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(&Claims{Role: tt.have}, tt.required)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthorize_NoClaims(t *testing.T) {
	require.ErrorIs(t, Authorize(nil, model.RoleUser), errs.ErrUnauthenticated)
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole(model.RoleUser))
	require.True(t, ValidRole(model.RoleAdmin))
	require.False(t, ValidRole("root"))
}
