/*
errors.go - Error taxonomy for the record set

ERROR CATEGORIES:
  1. Validation - a new record is rejected at entry (user-visible)
  2. Import format - an import document is rejected, set unchanged
  3. Not found - delete/get of an unknown ID
  4. Storage - the key-value slot failed; logged, never returned by
     Registry mutations

  Date parse failures are not errors at all: they degrade to the absent
  date (see schedule.ParseDate).
*/
package personnel

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when a new record misses a required field
	// or carries a malformed employee number.
	ErrValidation = errors.New("validation failed")

	// ErrImportFormat is returned when an import document is not an array
	// of record objects.
	ErrImportFormat = errors.New("invalid import format")

	// ErrRecordNotFound is returned when no record has the given ID.
	ErrRecordNotFound = errors.New("record not found")

	// ErrStorage wraps failures of the key-value slot.
	ErrStorage = errors.New("storage failure")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ImportFormatError describes why an import document was rejected.
// Index is the offending array element, or -1 for the document itself.
type ImportFormatError struct {
	Index  int
	Reason string
}

func (e *ImportFormatError) Error() string {
	if e.Index < 0 {
		return "import: " + e.Reason
	}
	return fmt.Sprintf("import: element %d: %s", e.Index, e.Reason)
}

func (e *ImportFormatError) Unwrap() error {
	return ErrImportFormat
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrImportFormat)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
