package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, EINVALID, ErrorCode(Invalid("cart.save", "bad quantity")))
	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("pg: connection refused")))

	wrapped := WrapError(errors.New("pg: connection refused"), ENOTFOUND, "coupon.get", "Coupon not found.")
	assert.Equal(t, ENOTFOUND, ErrorCode(wrapped))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Bad quantity.", ErrorMessage(Invalid("cart.save", "Bad quantity.")))

	// Internal details never reach the user.
	generic := "An internal error occurred. Please try again later."
	assert.Equal(t, generic, ErrorMessage(Internal(errors.New("pg: connection refused"), "cart.save", "query failed")))
	assert.Equal(t, generic, ErrorMessage(errors.New("pg: connection refused")))
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "coupon.apply: Invalid coupon code.", (&Error{Code: ENOTFOUND, Op: "coupon.apply", Message: "Invalid coupon code."}).Error())
	assert.Equal(t, "Invalid coupon code.", (&Error{Code: ENOTFOUND, Message: "Invalid coupon code."}).Error())
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, EINVALID, "op", "message"))

	cause := errors.New("boom")
	wrapped := WrapError(cause, EPAYMENT, "payment.create", "Payment could not be initiated.")
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, IsCode(wrapped, EPAYMENT))
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(Conflict("coupon.upsert", "duplicate code"), ECONFLICT))
	assert.False(t, IsCode(Conflict("coupon.upsert", "duplicate code"), EINVALID))
	assert.False(t, IsCode(nil, EINTERNAL))
}
