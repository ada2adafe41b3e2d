// Package errors provides structured error types for the bitparse library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: field path, Go type, field codec type, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindInvalidArgument).
//		Path("temperature").
//		GoType("string").
//		FieldType("i16").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Overflow(errors.PhaseEncode, path, 300, "u8")
//	err := errors.Truncated(errors.PhaseDecode, path, 16, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels match any error of the same Kind regardless of phase:
//
//	if errors.Is(err, errors.ErrTruncatedInput) { ... }
package errors
