package paritos

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
)

// Application error codes. The domain-specific codes mirror the
// coordinator's error taxonomy; generic ones cover everything else.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	ECONFLICT = "conflict"

	EINVALIDTRANSITION   = "invalid_transition"
	ECOURIERUNAVAILABLE  = "courier_unavailable"
	EALREADYASSIGNED     = "already_assigned"
	EEMPTYCART           = "empty_cart"
	EMISSINGPROFILE      = "missing_profile"
	EPROFILEUPDATEFAILED = "profile_update_failed"
	EPARTIALFAILURE      = "partial_failure"
	EPERSISTENCE         = "persistence_error"
)

const DefaultErrorMessage = "An internal error has occurred."

type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message, safe to show to a caller.
	Message string

	// Operation that failed, for the logs.
	Op string

	// Additional context for operators (ids involved, states seen).
	Fields map[string]interface{}

	// Wrapped error, if any.
	Err error
}

func (e *Error) Error() string {
	var buf bytes.Buffer

	if e.Op != "" {
		fmt.Fprintf(&buf, "%s: ", e.Op)
	}

	if e.Err != nil {
		buf.WriteString(e.Err.Error())
	} else {
		if e.Code != "" {
			fmt.Fprintf(&buf, "<%s> ", e.Code)
		}
		buf.WriteString(e.Message)
	}

	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// OpError wraps err with the operation name, keeping the original
// code and message reachable through the chain.
func OpError(op string, err error) error {
	return &Error{Op: op, Err: err}
}

// ErrorWithCode wraps err and forces a code onto the result.
func ErrorWithCode(err error, code string) error {
	return &Error{Code: code, Err: err}
}

// ErrorCode walks the chain and returns the first non-empty code,
// or EINTERNAL for non-application errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		for e != nil {
			if e.Code != "" {
				return e.Code
			}

			var next *Error
			if !errors.As(e.Err, &next) {
				break
			}
			e = next
		}
	}

	return EINTERNAL
}

// ErrorMessage walks the chain and returns the first non-empty
// message, or the default one.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		for e != nil {
			if e.Message != "" {
				return e.Message
			}

			var next *Error
			if !errors.As(e.Err, &next) {
				break
			}
			e = next
		}
	}

	return DefaultErrorMessage
}

var codeToHTTPStatus = map[string]int{
	EINVALID:             http.StatusBadRequest,
	EEMPTYCART:           http.StatusBadRequest,
	EMISSINGPROFILE:      http.StatusBadRequest,
	ENOTFOUND:            http.StatusNotFound,
	ECONFLICT:            http.StatusConflict,
	EINVALIDTRANSITION:   http.StatusConflict,
	ECOURIERUNAVAILABLE:  http.StatusConflict,
	EALREADYASSIGNED:     http.StatusConflict,
	EPROFILEUPDATEFAILED: http.StatusInternalServerError,
	EPARTIALFAILURE:      http.StatusInternalServerError,
	EPERSISTENCE:         http.StatusInternalServerError,
	EINTERNAL:            http.StatusInternalServerError,
}

func ErrCodeToHTTPStatus(err error) int {
	if status, ok := codeToHTTPStatus[ErrorCode(err)]; ok {
		return status
	}

	return http.StatusInternalServerError
}
