package inspect

import (
	"fmt"

	"go.uber.org/zap"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/codec"
	"github.com/csgtools/csd-inspect/errors"
)

// listRendering drives one list traversal: flavor-specific head location,
// stop condition, codec resolution and the lazy element sequence.
type listRendering struct {
	flavor  Flavor
	summary string
	seq     *Seq
}

func newListRendering(v csdinspect.Value, flavor Flavor, syms csdinspect.SymbolTable) (Rendering, error) {
	extractor, err := v.Field("m_entryExtractor")
	if err != nil {
		return nil, err
	}

	fwd, err := v.Field("m_head")
	if err != nil {
		return nil, err
	}
	if flavor.IsProxy() {
		// One extra hop from the non-owning handle to the real head.
		fwd, err = fwd.Deref()
		if err != nil {
			return nil, err
		}
	}

	// Tail queues embed a by-value sentinel entry whose own address
	// terminates traversal; the singly-linked flavors stop at null.
	entryField := "m_headEntry"
	if flavor.IsTailQ() {
		entryField = "m_endEntry"
	}
	headEntry, err := fwd.Field(entryField)
	if err != nil {
		return nil, err
	}
	var stop uint64
	if flavor.IsTailQ() {
		stop, err = headEntry.Addr()
		if err != nil {
			return nil, err
		}
	}

	first, err := headEntry.Field("next")
	if err != nil {
		return nil, err
	}

	canon := v.Type().StripTypedefs()
	fields, err := canon.Fields()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 || !fields[0].IsBase {
		return nil, errors.TypeMismatch(errors.PhaseClassify, canon.Name(), "list type has no base class")
	}
	baseArgs, err := fields[0].Type.TemplateArgs()
	if err != nil {
		return nil, err
	}
	if len(baseArgs) == 0 || baseArgs[0].Type == nil {
		return nil, errors.BadTemplateArg(fields[0].Type.Name(), 0, "element type argument missing")
	}
	elementTy := baseArgs[0].Type

	refUnionTy := first.Type().StripTypedefs()
	refArgs, err := refUnionTy.TemplateArgs()
	if err != nil {
		return nil, err
	}
	if len(refArgs) == 0 || refArgs[0].Type == nil {
		return nil, errors.BadTemplateArg(refUnionTy.Name(), 0, "entry type argument missing")
	}
	entryTy := refArgs[0].Type

	extractorTy := extractor.Type().StripTypedefs()

	cdc, err := codec.Resolve(syms, elementTy, entryTy, extractorTy, refUnionTy)
	if err != nil {
		return nil, err
	}
	Logger().Debug("resolved list codec",
		zap.String("type", canon.Name()),
		zap.String("flavor", flavor.String()))

	firstAddr, err := refAddr(first)
	if err != nil {
		return nil, err
	}

	summary := nsPrefix + flavor.String() + " of " + elementTy.Name()
	sizeShown := false
	if sz, err := fwd.Field("m_sz"); err == nil && sz.Type().StripTypedefs().Kind() == csdinspect.KindInt {
		if n, err := sz.Uint(); err == nil {
			summary += fmt.Sprintf(", size = %d", n)
			sizeShown = true
		}
	}
	if !sizeShown && firstAddr == stop {
		summary += " (empty)"
	}
	if exFields, err := extractorTy.Fields(); err == nil && len(exFields) > 0 {
		summary += fmt.Sprintf(", extractor %s = %s", extractorTy.Name(), extractor.Format())
	}

	return &listRendering{
		flavor:  flavor,
		summary: summary,
		seq:     newListSeq(first, extractor, cdc, stop),
	}, nil
}

// newListSeq builds the traversal state machine: Running(ref) until the
// reference word equals the stop value, then Finished for good. Each pull
// yields the current element before advancing through the codec.
func newListSeq(first, extractor csdinspect.Value, cdc *codec.Codec, stop uint64) *Seq {
	ref := first
	count := 0
	return &Seq{advance: func() (Child, bool, error) {
		addr, err := refAddr(ref)
		if err != nil {
			return Child{}, false, err
		}
		if addr == stop {
			return Child{}, false, nil
		}
		count++

		elemPtr, err := cdc.GetValue.Call(ref)
		if err != nil {
			return Child{}, false, err
		}
		item, err := elemPtr.Deref()
		if err != nil {
			return Child{}, false, err
		}

		entryPtr, err := cdc.GetEntry.Call(extractor, ref)
		if err != nil {
			return Child{}, false, err
		}
		entry, err := entryPtr.Deref()
		if err != nil {
			return Child{}, false, err
		}
		ref, err = entry.Field("next")
		if err != nil {
			return Child{}, false, err
		}

		return Child{Label: fmt.Sprintf("[%d]", count), Value: item}, true, nil
	}}
}

func (r *listRendering) Summary() string { return r.summary }

func (r *listRendering) Children() *Seq { return r.seq }

func (r *listRendering) Hint() Hint { return HintSequence }
