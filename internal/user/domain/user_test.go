package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullNameOf(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		expected string
	}{
		{name: "nombre y apellido", first: "Super", last: "Admin", expected: "Super Admin"},
		{name: "sólo nombre", first: "Super", expected: "Super"},
		{name: "sin nombre usa username", expected: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FullNameOf(tt.first, tt.last, "admin"))
		})
	}
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	username, first := "admin", "Super"
	u := NewUser(UserInput{Username: &username, FirstName: &first}, "$2a$10$hash")

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hash")
	assert.NotContains(t, string(data), "password")
	assert.Equal(t, "Super", u.FullName)
	assert.Equal(t, "$2a$10$hash", u.Password)
}
