package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidate_Success(t *testing.T) {
	p := loginPayload{Email: "user@example.com", Password: "secret123"}
	assert.NoError(t, Validate(p))
}

func TestValidate_FieldErrors(t *testing.T) {
	p := loginPayload{Email: "not-an-email", Password: "short"}

	err := Validate(p)
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)

	fields := valErr.Fields()
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "must be at least 8 characters", fields["Password"])
}

func TestValidate_ErrorMessage(t *testing.T) {
	p := loginPayload{}

	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "is required")
}

func TestDecodeAndValidate_Success(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"user@example.com","password":"secret123"}`))

	var p loginPayload
	require.NoError(t, DecodeAndValidate(r, &p))
	assert.Equal(t, "user@example.com", p.Email)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{`))

	var p loginPayload
	err := DecodeAndValidate(r, &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
