package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	ok := Registration{Name: "Admin", PhoneNumber: "5551234567", Email: "admin@example.com", Password: "password123"}
	assert.Nil(t, ValidateRegistration(ok))

	bad := Registration{Name: "A", PhoneNumber: "555-1234", Email: "admin", Password: "short"}
	verr := ValidateRegistration(bad)
	require.NotNil(t, verr)
	assert.Equal(t, "Name must be at least 2 characters", verr.Field("name"))
	assert.Equal(t, "Phone number must be a 10-digit number", verr.Field("phone_number"))
	assert.Equal(t, "Enter a valid email address", verr.Field("email"))
	assert.Equal(t, "Password must be at least 8 characters", verr.Field("password"))
}

func TestValidateNewTenant(t *testing.T) {
	assert.Nil(t, ValidateNewTenant(NewTenant{Name: "Alice Tan", Room: "201", EmailAddress: "alice@example.com", ContactNumber: "5550001"}))

	verr := ValidateNewTenant(NewTenant{})
	require.NotNil(t, verr)
	assert.Len(t, verr.Fields, 4)
}
