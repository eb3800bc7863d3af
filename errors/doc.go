// Package errors provides structured error types for the csd-inspect
// library.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The Error type carries the context that matters when a
// decode goes wrong: the symbol name that was looked up, the type name
// involved, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindSymbolNotFound).
//		Symbol(name).
//		Detail("required codec accessor is absent").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.SymbolNotFound(name)
//	err := errors.MemoryRead(errors.PhaseWalk, addr, cause)
//
// All errors implement the standard error interface and support
// errors.Is/As. Memory read failures always wrap the provider's original
// error so the cause is never lost.
package errors
