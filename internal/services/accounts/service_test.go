package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvisionConflict(t *testing.T) {
	// A duplicate key with the email already registered is the email index.
	assert.ErrorIs(t, provisionConflict(true), ErrEmailTaken)

	// Otherwise two concurrent provisions raced on the same role code.
	err := provisionConflict(false)
	assert.ErrorIs(t, err, ErrCodeConflict)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestRandomOTPShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp, err := randomOTP()
		assert.NoError(t, err)
		assert.Len(t, otp, 6)
	}
}
