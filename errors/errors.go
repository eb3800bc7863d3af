package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseClassify Phase = "classify" // flavor detection
	PhaseResolve  Phase = "resolve"  // codec symbol resolution
	PhaseDecode   Phase = "decode"   // tagged reference decoding
	PhaseWalk     Phase = "walk"     // list traversal
	PhaseTarget   Phase = "target"   // target process access
	PhaseRegister Phase = "register" // image registration
)

// Kind categorizes the error
type Kind string

const (
	KindSymbolNotFound Kind = "symbol_not_found"
	KindNotAFunction   Kind = "not_a_function"
	KindTypeMismatch   Kind = "type_mismatch"
	KindMemoryRead     Kind = "memory_read"
	KindBadTemplateArg Kind = "bad_template_arg"
	KindFieldMissing   Kind = "field_missing"
	KindUnsupported    Kind = "unsupported"
	KindInvalidTarget  Kind = "invalid_target"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Symbol   string
	TypeName string
	Detail   string
	Addr     uint64
	HasAddr  bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Symbol != "" {
		b.WriteString(": symbol ")
		b.WriteString(e.Symbol)
	}

	if e.TypeName != "" {
		if e.Symbol != "" {
			b.WriteString(", type ")
		} else {
			b.WriteString(": type ")
		}
		b.WriteString(e.TypeName)
	}

	if e.HasAddr {
		fmt.Fprintf(&b, " at 0x%x", e.Addr)
	}

	if e.Detail != "" {
		if e.Symbol != "" || e.TypeName != "" || e.HasAddr {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Symbol sets the qualified symbol name involved
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// TypeName sets the target type name involved
func (b *Builder) TypeName(name string) *Builder {
	b.err.TypeName = name
	return b
}

// Addr sets the target address involved
func (b *Builder) Addr(addr uint64) *Builder {
	b.err.Addr = addr
	b.err.HasAddr = true
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// SymbolNotFound reports a required symbol absent from the target's symbol
// table. The name is the exact text that was looked up.
func SymbolNotFound(name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindSymbolNotFound,
		Symbol: name,
		Detail: "required symbol does not exist",
	}
}

// NotAFunction reports a symbol that resolved to something other than a
// function.
func NotAFunction(name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindNotAFunction,
		Symbol: name,
		Detail: "symbol exists but is not a function",
	}
}

// MemoryRead wraps a provider read/cast/dereference failure. The cause is
// carried unmodified.
func MemoryRead(phase Phase, addr uint64, cause error) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindMemoryRead,
		Addr:    addr,
		HasAddr: true,
		Cause:   cause,
	}
}

// FieldMissing reports a struct member the metadata did not contain
func FieldMissing(phase Phase, typeName, fieldName string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindFieldMissing,
		TypeName: typeName,
		Detail:   fmt.Sprintf("field %q not found", fieldName),
	}
}

// BadTemplateArg reports a template argument with an unexpected shape
func BadTemplateArg(typeName string, index int, detail string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindBadTemplateArg,
		TypeName: typeName,
		Detail:   fmt.Sprintf("template argument %d: %s", index, detail),
	}
}

// TypeMismatch reports a value whose shape matches no known flavor. The
// dispatcher treats it as "no decoder", not a failure; it only surfaces as
// an error when a caller bypasses classification.
func TypeMismatch(phase Phase, typeName, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		TypeName: typeName,
		Detail:   detail,
	}
}

// Unsupported reports an operation the provider cannot perform
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidTarget reports a target that could not be opened or addressed
func InvalidTarget(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseTarget,
		Kind:   KindInvalidTarget,
		Detail: detail,
		Cause:  cause,
	}
}
