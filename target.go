package csdinspect

// TypeKind identifies the basic shape of a target type after typedef
// stripping.
type TypeKind uint8

const (
	KindOther TypeKind = iota
	KindStruct
	KindUnion
	KindInt
	KindPointer
)

// Type describes one type in the target program, as reported by the host
// debugger's type metadata.
type Type interface {
	// Name returns the fully qualified declared name, including template
	// arguments, e.g. "csg::slist_head<Item, csg::no_size>".
	Name() string

	Kind() TypeKind

	// StripTypedefs resolves typedef chains to the underlying type.
	// Non-typedef types return themselves.
	StripTypedefs() Type

	// TemplateArgs lists the template arguments of a template instance in
	// declaration order; empty for non-template types.
	TemplateArgs() ([]TemplateArg, error)

	// Fields lists struct or union members in declaration order. Base
	// classes appear before declared members with IsBase set, so field 0
	// of a derived class is its primary base.
	Fields() ([]Field, error)

	// Pointer returns the pointer-to-this type.
	Pointer() Type

	// Elem returns the pointee type of a pointer or reference type.
	Elem() (Type, error)
}

// TemplateArg is one template argument: a type, or a non-type constant
// carried as its decimal text plus declared type.
type TemplateArg struct {
	// Type is the argument itself for type parameters, or the declared
	// type of a non-type constant.
	Type Type

	// ConstText holds the decimal text of a non-type argument, e.g. "8".
	// Empty when the argument is a type.
	ConstText string

	IsConst bool
}

// Field is one struct or union member.
type Field struct {
	Name   string
	Type   Type
	IsBase bool
}

// Value is one typed datum in the target address space. Implementations
// never mutate the target; every accessor is a read.
//
// Operations that touch target memory may fail on invalid or unmapped
// addresses. Such failures carry errors.KindMemoryRead and wrap the
// provider's original error unmodified.
type Value interface {
	Type() Type

	// Field reads the named member of a struct or union value.
	Field(name string) (Value, error)

	// Deref follows a pointer or reference value to its target.
	Deref() (Value, error)

	// Cast reinterprets this value's bits as the given type at the same
	// location.
	Cast(to Type) (Value, error)

	// Addr returns the target address this value lives at.
	Addr() (uint64, error)

	// Uint reads the value as an unsigned integer. Fails when the
	// stripped type is not integral.
	Uint() (uint64, error)

	// Sub returns a value of this value's type holding its integer
	// content minus n. The result is synthesized and has no target
	// address of its own.
	Sub(n uint64) (Value, error)

	// Format renders the value as display text.
	Format() string
}

// Function is an invocable handle to a function symbol bound into the
// target, obtained from a SymbolTable.
type Function interface {
	Call(args ...Value) (Value, error)
}

// SymbolTable resolves fully qualified names against the target's symbol
// table.
//
// The name is matched exactly: callers are responsible for producing the
// ABI-correct text, including integer template argument suffixes.
type SymbolTable interface {
	// LookupFunction returns an invocable handle for the named function.
	// It fails with errors.KindSymbolNotFound when no symbol has that
	// name, and errors.KindNotAFunction when the symbol is not callable.
	LookupFunction(qualifiedName string) (Function, error)
}
