package paritos

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeWalksWrappedChain(t *testing.T) {

	inner := &Error{Code: EINVALIDTRANSITION, Message: "order status can only advance to the next lifecycle step"}
	wrapped := OpError("OrderUseCase.Advance", inner)

	assert.Equal(t, EINVALIDTRANSITION, ErrorCode(wrapped))
	assert.Equal(t, inner.Message, ErrorMessage(wrapped))
}

func TestErrorCodeDefaultsToInternal(t *testing.T) {

	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("boom")))
	assert.Equal(t, DefaultErrorMessage, ErrorMessage(errors.New("boom")))
	assert.Equal(t, "", ErrorCode(nil))
}

func TestErrorWithCodeOverrides(t *testing.T) {

	err := ErrorWithCode(errors.New("validation failed"), EINVALID)

	assert.Equal(t, EINVALID, ErrorCode(err))
}

func TestErrCodeToHTTPStatus(t *testing.T) {

	cases := map[string]int{
		EEMPTYCART:          http.StatusBadRequest,
		EMISSINGPROFILE:     http.StatusBadRequest,
		ENOTFOUND:           http.StatusNotFound,
		EINVALIDTRANSITION:  http.StatusConflict,
		ECOURIERUNAVAILABLE: http.StatusConflict,
		EALREADYASSIGNED:    http.StatusConflict,
		EPARTIALFAILURE:     http.StatusInternalServerError,
		EPERSISTENCE:        http.StatusInternalServerError,
	}

	for code, expected := range cases {
		assert.Equal(t, expected, ErrCodeToHTTPStatus(&Error{Code: code}), code)
	}

	assert.Equal(t, http.StatusInternalServerError, ErrCodeToHTTPStatus(errors.New("boom")))
}

func TestErrorStringIncludesOp(t *testing.T) {

	err := &Error{Op: "CourierUseCase.Approve", Code: EPARTIALFAILURE, Message: "account promoted but courier record creation failed"}

	assert.Contains(t, err.Error(), "CourierUseCase.Approve")
	assert.Contains(t, err.Error(), EPARTIALFAILURE)
}
