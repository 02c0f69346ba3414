// Package ledgererror defines the error types returned by the ledger core.
// Every error is recoverable by the caller; the core never aborts a batch
// or terminates the process on any of these.
package ledgererror

import (
	"errors"
	"fmt"
)

// ValidationError reports a single malformed input field.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s='%s': %s", e.Field, e.Value, e.Reason)
}

// DuplicateError reports an attempt to commit a transaction whose full
// identity tuple already exists for the same user.
type DuplicateError struct {
	Key string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate transaction: %s", e.Key)
}

// NotFoundError reports a selector that matched no transaction.
type NotFoundError struct {
	Selector string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no transaction matches selector %s", e.Selector)
}

// AmbiguousSelectorError reports a selector that matched more than one
// transaction where exactly one was required.
type AmbiguousSelectorError struct {
	Selector string
	Matches  int
}

func (e *AmbiguousSelectorError) Error() string {
	return fmt.Sprintf("selector %s matches %d transactions, expected exactly one", e.Selector, e.Matches)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDuplicate reports whether err is (or wraps) a DuplicateError.
func IsDuplicate(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsAmbiguous reports whether err is (or wraps) an AmbiguousSelectorError.
func IsAmbiguous(err error) bool {
	var ae *AmbiguousSelectorError
	return errors.As(err, &ae)
}
