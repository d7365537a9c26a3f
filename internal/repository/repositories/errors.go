package repositories

import (
	paritos "paritos.app/delivery"
)

// persistenceError wraps an opaque gorm failure. Callers never retry;
// the code surfaces as-is to the operator.
func persistenceError(err error) error {
	return &paritos.Error{
		Code:    paritos.EPERSISTENCE,
		Message: "storage operation failed",
		Err:     err,
	}
}

func notFoundError(message string, err error) error {
	return &paritos.Error{
		Code:    paritos.ENOTFOUND,
		Message: message,
		Err:     err,
	}
}
