package inspect

import (
	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/errors"
)

// refAddr reads the raw address word out of an entry_ref_union value. The
// word lives in the union's offset member as m_address.
func refAddr(ref csdinspect.Value) (uint64, error) {
	off, err := ref.Field("offset")
	if err != nil {
		return 0, err
	}
	m, err := off.Field("m_address")
	if err != nil {
		return 0, err
	}
	return m.Uint()
}

// refRendering decodes one tagged reference word. The low bit selects the
// interpretation: set means address-1 points at the element, clear means
// the address points at the entry struct. Exactly one reading is ever
// valid for a given instance, so the decode is total and does not recurse.
type refRendering struct {
	label string
	child csdinspect.Value
	seq   *Seq
}

func newRefRendering(v csdinspect.Value) (Rendering, error) {
	canon := v.Type().StripTypedefs()

	off, err := v.Field("offset")
	if err != nil {
		return nil, err
	}
	word, err := off.Field("m_address")
	if err != nil {
		return nil, err
	}
	addr, err := word.Uint()
	if err != nil {
		return nil, err
	}

	args, err := canon.TemplateArgs()
	if err != nil {
		return nil, err
	}
	if len(args) < 2 || args[0].Type == nil || args[1].Type == nil {
		return nil, errors.BadTemplateArg(canon.Name(), 0, "entry_ref_union needs entry and element type arguments")
	}

	var ptrTy csdinspect.Type
	var child csdinspect.Value
	if addr&1 == 1 {
		// Tagged: the word minus one is a pointer to the element.
		ptrTy = args[1].Type.Pointer()
		adjusted, err := word.Sub(1)
		if err != nil {
			return nil, err
		}
		child, err = adjusted.Cast(ptrTy)
		if err != nil {
			return nil, err
		}
	} else {
		// Untagged, including null: the word is a pointer to the entry.
		ptrTy = args[0].Type.Pointer()
		child, err = word.Cast(ptrTy)
		if err != nil {
			return nil, err
		}
	}

	r := &refRendering{label: ptrTy.Name(), child: child}
	emitted := false
	r.seq = &Seq{advance: func() (Child, bool, error) {
		if emitted {
			return Child{}, false, nil
		}
		emitted = true
		return Child{Label: r.label, Value: r.child}, true, nil
	}}
	return r, nil
}

func (r *refRendering) Summary() string { return r.child.Format() }

func (r *refRendering) Children() *Seq { return r.seq }

func (r *refRendering) Hint() Hint { return HintPlain }
