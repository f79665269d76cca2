package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToPublicView_StripsPasswordHash(t *testing.T) {
	u := &User{
		ID:           "abc",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$secret",
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         RoleAdmin,
		Active:       true,
	}

	view := ToPublicView(u)
	require.Equal(t, PublicUser{ID: "abc", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe", Role: RoleAdmin}, view)

	b, err := json.Marshal(view)
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret")
	require.Contains(t, string(b), `"id":"abc"`)
}

func TestUserJSON_NeverContainsHash(t *testing.T) {
	b, err := json.Marshal(&User{ID: "x", PasswordHash: "$2a$10$secret"})
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret")
}

func TestNewID(t *testing.T) {
	a, err := NewID()
	require.NoError(t, err)
	b, err := NewID()
	require.NoError(t, err)

	require.Len(t, a, 16)
	require.NotEqual(t, a, b)
}

func TestAssignID_KeepsExisting(t *testing.T) {
	id := "preset"
	require.NoError(t, assignID(&id))
	require.Equal(t, "preset", id)

	var empty string
	require.NoError(t, assignID(&empty))
	require.NotEmpty(t, empty)
}
