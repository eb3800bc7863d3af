package memview

import (
	"fmt"
	"strings"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/errors"
)

// Value is a typed view of target memory. The zero Value is not usable;
// construct with NewValue or Synth.
type Value struct {
	space Space
	typ   *TypeDesc
	addr  uint64
	word  uint64
	synth bool
}

// NewValue views the given type at a target address.
func NewValue(space Space, t *TypeDesc, addr uint64) *Value {
	return &Value{space: space, typ: t, addr: addr}
}

// Synth builds a value of scalar or pointer type holding a literal word
// instead of reading target memory. Synthesized values have no address.
func Synth(space Space, t *TypeDesc, word uint64) *Value {
	return &Value{space: space, typ: t, word: word, synth: true}
}

func (v *Value) Type() csdinspect.Type { return v.typ }

// bits reads the value's raw content as an n-byte little-endian word.
func (v *Value) bits(n int) (uint64, error) {
	if v.synth {
		return v.word, nil
	}
	if n <= 0 || n > 8 {
		return 0, errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("%d-byte scalar read", n))
	}
	b, err := v.space.ReadBytes(v.addr, n)
	if err != nil {
		return 0, errors.MemoryRead(errors.PhaseDecode, v.addr, err)
	}
	var w uint64
	for i := n - 1; i >= 0; i-- {
		w = w<<8 | uint64(b[i])
	}
	return w, nil
}

func (v *Value) Field(name string) (csdinspect.Value, error) {
	st := v.typ.strip()
	if st.kind != csdinspect.KindStruct && st.kind != csdinspect.KindUnion {
		return nil, errors.TypeMismatch(errors.PhaseDecode, v.typ.name, "not a struct or union")
	}
	if v.synth {
		return nil, errors.Unsupported(errors.PhaseDecode, "member access on synthesized value")
	}
	f, ok := st.findField(name)
	if !ok {
		return nil, errors.FieldMissing(errors.PhaseDecode, v.typ.name, name)
	}
	return NewValue(v.space, f.Type, v.addr+f.Off), nil
}

func (v *Value) Deref() (csdinspect.Value, error) {
	st := v.typ.strip()
	if st.elem == nil {
		return nil, errors.TypeMismatch(errors.PhaseDecode, v.typ.name, "not a pointer or reference")
	}
	w, err := v.bits(st.cat.PointerSize)
	if err != nil {
		return nil, err
	}
	return NewValue(v.space, st.elem, w), nil
}

func (v *Value) Cast(to csdinspect.Type) (csdinspect.Value, error) {
	td, ok := to.(*TypeDesc)
	if !ok {
		return nil, errors.Unsupported(errors.PhaseDecode, "cast to a type from another provider")
	}
	out := *v
	out.typ = td
	return &out, nil
}

func (v *Value) Addr() (uint64, error) {
	if v.synth {
		return 0, errors.Unsupported(errors.PhaseDecode, "synthesized value has no address")
	}
	return v.addr, nil
}

func (v *Value) Uint() (uint64, error) {
	st := v.typ.strip()
	switch st.kind {
	case csdinspect.KindInt:
		return v.bits(st.size)
	case csdinspect.KindPointer:
		return v.bits(st.cat.PointerSize)
	}
	return 0, errors.TypeMismatch(errors.PhaseDecode, v.typ.name, "not an integral value")
}

func (v *Value) Sub(n uint64) (csdinspect.Value, error) {
	w, err := v.Uint()
	if err != nil {
		return nil, err
	}
	return Synth(v.space, v.typ, w-n), nil
}

// Format renders the value as display text: integers in decimal, pointers
// in hex, structs and unions member by member.
func (v *Value) Format() string {
	st := v.typ.strip()
	switch st.kind {
	case csdinspect.KindInt:
		w, err := v.bits(st.size)
		if err != nil {
			return "<unavailable>"
		}
		if st.signed {
			return fmt.Sprintf("%d", signExtend(w, st.size))
		}
		return fmt.Sprintf("%d", w)
	case csdinspect.KindPointer:
		w, err := v.bits(st.cat.PointerSize)
		if err != nil {
			return "<unavailable>"
		}
		return fmt.Sprintf("0x%x", w)
	case csdinspect.KindStruct, csdinspect.KindUnion:
		return v.formatMembers(st)
	}
	return "<" + v.typ.name + ">"
}

func (v *Value) formatMembers(st *TypeDesc) string {
	if v.synth {
		return "<synthesized " + v.typ.name + ">"
	}
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, f := range st.fields {
		if f.IsBase {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(f.Name)
		b.WriteString(" = ")
		b.WriteString(NewValue(v.space, f.Type, v.addr+f.Off).Format())
	}
	b.WriteByte('}')
	return b.String()
}

func signExtend(w uint64, size int) int64 {
	shift := uint(64 - 8*size)
	return int64(w<<shift) >> shift
}
