package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string  `validate:"required,email"`
	Fee   float64 `validate:"gte=0"`
}

func TestFormatValidationError(t *testing.T) {
	t.Parallel()

	err := Validate(sample{Email: "nope", Fee: -1})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Email must satisfy email")
	assert.Contains(t, msg, "Fee must satisfy gte=0")

	assert.Equal(t, "boom", FormatValidationError(errors.New("boom")))
	assert.NoError(t, Validate(sample{Email: "vet@example.com"}))
}
