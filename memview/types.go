// Package memview implements the csdinspect provider interfaces over a raw
// little-endian address space.
//
// Types are built from descriptors that mirror what a debugger's metadata
// reports: qualified names, template arguments (including non-type
// constants), member offsets and base classes. Values are views of a
// (type, address) pair over a Space; every read goes back to the space, so
// a value observed twice can differ if the target moved on.
package memview

import (
	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/errors"
)

// Space is a raw target address space. Implementations are little-endian.
type Space interface {
	// ReadBytes reads n bytes at addr. Reads of unmapped or truncated
	// ranges fail.
	ReadBytes(addr uint64, n int) ([]byte, error)
}

// Catalog creates type descriptors that share one target layout.
type Catalog struct {
	// PointerSize is the width of a pointer in the target, in bytes:
	// 8 for native 64-bit targets, 4 for wasm32.
	PointerSize int
}

// FieldDesc describes one member of a struct or union descriptor.
type FieldDesc struct {
	Name   string
	Type   *TypeDesc
	Off    uint64
	IsBase bool
}

// F is shorthand for a member field descriptor.
func F(name string, t *TypeDesc, off uint64) FieldDesc {
	return FieldDesc{Name: name, Type: t, Off: off}
}

// Base is shorthand for a base class subobject descriptor.
func Base(t *TypeDesc, off uint64) FieldDesc {
	return FieldDesc{Name: t.Name(), Type: t, Off: off, IsBase: true}
}

// TypeDesc is a concrete csdinspect.Type backed by a descriptor.
type TypeDesc struct {
	cat        *Catalog
	name       string
	kind       csdinspect.TypeKind
	size       int
	signed     bool
	elem       *TypeDesc // pointee for pointers and references
	underlying *TypeDesc // typedef target
	fields     []FieldDesc
	targs      []csdinspect.TemplateArg
}

// Int creates an integer type descriptor.
func (c *Catalog) Int(name string, size int, signed bool) *TypeDesc {
	return &TypeDesc{cat: c, name: name, kind: csdinspect.KindInt, size: size, signed: signed}
}

// Struct creates a struct type descriptor. Base classes must precede
// declared members, matching debugger field order.
func (c *Catalog) Struct(name string, size int, fields ...FieldDesc) *TypeDesc {
	return &TypeDesc{cat: c, name: name, kind: csdinspect.KindStruct, size: size, fields: fields}
}

// Union creates a union type descriptor. All members sit at offset 0.
func (c *Catalog) Union(name string, size int, fields ...FieldDesc) *TypeDesc {
	return &TypeDesc{cat: c, name: name, kind: csdinspect.KindUnion, size: size, fields: fields}
}

// Pointer creates a pointer-to-elem descriptor.
func (c *Catalog) Pointer(elem *TypeDesc) *TypeDesc {
	return &TypeDesc{cat: c, name: elem.name + " *", kind: csdinspect.KindPointer, size: c.PointerSize, elem: elem}
}

// Reference creates a reference-to-elem descriptor. References are
// pointer-shaped in memory; Deref follows them the same way.
func (c *Catalog) Reference(elem *TypeDesc) *TypeDesc {
	return &TypeDesc{cat: c, name: elem.name + " &", kind: csdinspect.KindPointer, size: c.PointerSize, elem: elem}
}

// Typedef creates a named alias of underlying.
func (c *Catalog) Typedef(name string, underlying *TypeDesc) *TypeDesc {
	return &TypeDesc{cat: c, name: name, kind: underlying.kind, size: underlying.size, underlying: underlying}
}

// WithFields replaces the descriptor's member list and returns it. Needed
// for mutually recursive types, where members can only be attached after
// both descriptors exist.
func (t *TypeDesc) WithFields(fields ...FieldDesc) *TypeDesc {
	t.fields = fields
	return t
}

// WithTemplateArgs attaches template arguments to a template instance
// descriptor and returns it.
func (t *TypeDesc) WithTemplateArgs(args ...csdinspect.TemplateArg) *TypeDesc {
	t.targs = args
	return t
}

// TypeArg wraps a type as a template argument.
func TypeArg(t *TypeDesc) csdinspect.TemplateArg {
	return csdinspect.TemplateArg{Type: t}
}

// ConstArg wraps a non-type constant as a template argument, carrying the
// decimal text a debugger would print plus the declared type.
func ConstArg(text string, t *TypeDesc) csdinspect.TemplateArg {
	return csdinspect.TemplateArg{Type: t, ConstText: text, IsConst: true}
}

func (t *TypeDesc) Name() string { return t.name }

func (t *TypeDesc) Kind() csdinspect.TypeKind { return t.kind }

func (t *TypeDesc) StripTypedefs() csdinspect.Type {
	return t.strip()
}

func (t *TypeDesc) strip() *TypeDesc {
	s := t
	for s.underlying != nil {
		s = s.underlying
	}
	return s
}

func (t *TypeDesc) TemplateArgs() ([]csdinspect.TemplateArg, error) {
	return t.targs, nil
}

func (t *TypeDesc) Fields() ([]csdinspect.Field, error) {
	s := t.strip()
	out := make([]csdinspect.Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = csdinspect.Field{Name: f.Name, Type: f.Type, IsBase: f.IsBase}
	}
	return out, nil
}

func (t *TypeDesc) Pointer() csdinspect.Type {
	return t.cat.Pointer(t)
}

func (t *TypeDesc) Elem() (csdinspect.Type, error) {
	s := t.strip()
	if s.elem == nil {
		return nil, errors.TypeMismatch(errors.PhaseDecode, t.name, "not a pointer or reference")
	}
	return s.elem, nil
}

// Size returns the descriptor's size in bytes.
func (t *TypeDesc) Size() int { return t.strip().size }

// findField locates a member by name, descending into base class
// subobjects, and returns its descriptor plus byte offset from the
// enclosing object.
func (t *TypeDesc) findField(name string) (FieldDesc, bool) {
	s := t.strip()
	for _, f := range s.fields {
		if !f.IsBase && f.Name == name {
			return f, true
		}
	}
	for _, f := range s.fields {
		if !f.IsBase {
			continue
		}
		if inner, ok := f.Type.findField(name); ok {
			inner.Off += f.Off
			return inner, true
		}
	}
	return FieldDesc{}, false
}
