/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calculation core never returns errors: anomalous inputs degrade to
  zero or empty schedules. Errors only come from the edges - parsing user
  input and talking to the run store.

ERROR CATEGORIES:
  1. Input errors - Asset fields that cannot be parsed or are out of range
  2. Store errors - Run cache lookups and database failures

USAGE:
    if errors.Is(err, generic.ErrInvalidAsset) {
        // 400
    }
    var verr *generic.ValidationError
    if errors.As(err, &verr) {
        log.Printf("field %s: %s", verr.Field, verr.Message)
    }

SEE ALSO:
  - factory/asset.go: Produces ValidationError
  - store/sqlite/sqlite.go: Produces ErrRunNotFound
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAsset is returned when an asset definition cannot be turned
	// into a calculation input.
	ErrInvalidAsset = errors.New("invalid asset")

	// ErrNoAssets is returned when a request carries an empty asset list.
	ErrNoAssets = errors.New("no assets supplied")

	// ErrRunNotFound is returned when a cached run id is unknown or pruned.
	ErrRunNotFound = errors.New("run not found")

	// ErrScenarioNotFound is returned for an unknown demo portfolio id.
	ErrScenarioNotFound = errors.New("scenario not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending field of an asset definition.
type ValidationError struct {
	Asset   string `json:"asset,omitempty"` // asset name or position, for messages
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Asset == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("asset %s: invalid %s: %s", e.Asset, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidAsset
}
