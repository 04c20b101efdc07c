// Package errs provides standardized error types for the food delivery backend.
// Every type pairs a sentinel with a detail struct so callers can classify
// failures with errors.Is and inspect them with errors.As.
//
// The package includes:
//   - ObjectNotFoundError: an entity lookup found nothing
//   - ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError: malformed input
//   - ForbiddenError: the actor has no relation to the entity it acts on
//   - ConflictError: a write lost against the current stored state
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// The HTTP adapter maps the sentinels onto status codes, so new error kinds
// should be added here rather than as ad-hoc strings.
package errs
