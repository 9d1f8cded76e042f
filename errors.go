package edispec

import (
	"errors"
	"fmt"

	"github.com/reoring/edispec/i18n"
)

// Failure codes. They are stable and double as i18n message keys.
const (
	CodeMalformedInput        = "malformed_input"
	CodeEmptySpecArray        = "empty_spec_array"
	CodeMissingTransactionSet = "missing_transaction_set"
)

// Sentinels matched by errors.Is against an *ImportError.
var (
	ErrMalformedInput        = errors.New("edispec: malformed input")
	ErrEmptySpecArray        = errors.New("edispec: empty specification array")
	ErrMissingTransactionSet = errors.New("edispec: no definition carries x-openedi-message-id")
)

// ImportError is the only error kind returned by Import.
type ImportError struct {
	Code    string
	Message string
	Cause   error // Optional: underlying parser or decoder error.
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("edispec: %s: %v", e.Message, e.Cause)
	}
	return "edispec: " + e.Message
}

func (e *ImportError) Unwrap() error { return e.Cause }

// Is matches the sentinel for e.Code.
func (e *ImportError) Is(target error) bool {
	switch target {
	case ErrMalformedInput:
		return e.Code == CodeMalformedInput
	case ErrEmptySpecArray:
		return e.Code == CodeEmptySpecArray
	case ErrMissingTransactionSet:
		return e.Code == CodeMissingTransactionSet
	}
	return false
}

// Localized renders the failure for end users in the current i18n language.
func (e *ImportError) Localized() string {
	data := map[string]string{}
	if e.Cause != nil {
		data["cause"] = e.Cause.Error()
	}
	return i18n.T(e.Code, data)
}

// AsImportError extracts an *ImportError from err.
func AsImportError(err error) (*ImportError, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

func malformed(msg string, cause error) *ImportError {
	return &ImportError{Code: CodeMalformedInput, Message: msg, Cause: cause}
}
