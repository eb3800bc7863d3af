// Package codec resolves the specialized entry_ref_codec accessor
// functions a CSG list was compiled with.
//
// Iterating a list from outside the program needs two functions that only
// exist as template instantiations in the target binary:
//
//	csg::detail::entry_ref_codec<Entry, T, Extractor>::get_entry(Extractor &, Ref)
//	csg::detail::entry_ref_codec<Entry, T, Extractor>::get_value(Ref)
//
// Their qualified names are rebuilt here from inspected type metadata and
// matched exactly against the target's symbol table. The delicate part is
// the offset extractor: its third template argument is a compile-time
// integer that debuggers report as a bare number, while the symbol name
// carries the ABI literal suffix for the argument's type ("8" vs "8ul").
package codec

import (
	"fmt"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/errors"
	"github.com/csgtools/csd-inspect/internal/typename"
)

const offsetExtractorName = "csg::offset_extractor"

// Codec holds the resolved accessor handles for one list specialization.
type Codec struct {
	// ClassName is the fully specialized entry_ref_codec type text the
	// accessors were resolved on.
	ClassName string

	// GetEntry maps (extractor, ref) to a pointer to the entry struct.
	GetEntry csdinspect.Function

	// GetValue maps a ref to a pointer to the element.
	GetValue csdinspect.Function
}

// ExtractorTypeText returns the extractor type's name as it appears in
// symbol text. For csg::offset_extractor the name is rebuilt so the offset
// argument carries its ABI literal suffix; other extractors pass through
// under their stripped name.
func ExtractorTypeText(t csdinspect.Type) (string, error) {
	st := t.StripTypedefs()
	if typename.Normalize(st.Name()) != offsetExtractorName {
		// Symbol text built from a malformed name can never resolve;
		// fail here with the name instead of downstream with a miss.
		if _, err := typename.SplitTemplateArgs(st.Name()); err != nil {
			return "", errors.BadTemplateArg(st.Name(), 0, "malformed template argument text")
		}
		return st.Name(), nil
	}

	args, err := st.TemplateArgs()
	if err != nil {
		return "", err
	}
	if len(args) < 3 {
		return "", errors.BadTemplateArg(st.Name(), 2, "offset_extractor has fewer than three arguments")
	}
	if args[0].Type == nil || args[1].Type == nil {
		return "", errors.BadTemplateArg(st.Name(), 0, "type argument missing")
	}
	off := args[2]
	if !off.IsConst {
		return "", errors.BadTemplateArg(st.Name(), 2, "offset argument is not a compile-time constant")
	}
	if off.Type == nil {
		return "", errors.BadTemplateArg(st.Name(), 2, "offset argument has no declared type")
	}

	fixed := typename.FormatNTTP(off.ConstText, off.Type.StripTypedefs().Name())
	return fmt.Sprintf("%s<%s, %s, %s>",
		offsetExtractorName, args[0].Type.Name(), args[1].Type.Name(), fixed), nil
}

// Resolve builds the specialized codec type name for the given list type
// arguments and resolves both accessor symbols in the target. A missing or
// non-function symbol is fatal to decoding the value being inspected;
// there is no fallback and no retry.
func Resolve(syms csdinspect.SymbolTable, element, entry, extractor, refUnion csdinspect.Type) (*Codec, error) {
	exText, err := ExtractorTypeText(extractor)
	if err != nil {
		return nil, err
	}

	className := fmt.Sprintf("csg::detail::entry_ref_codec<%s, %s, %s>",
		entry.Name(), element.Name(), exText)

	getEntry, err := lookup(syms, fmt.Sprintf("%s::get_entry(%s &, %s)",
		className, exText, refUnion.Name()))
	if err != nil {
		return nil, err
	}

	getValue, err := lookup(syms, fmt.Sprintf("%s::get_value(%s)",
		className, refUnion.Name()))
	if err != nil {
		return nil, err
	}

	return &Codec{ClassName: className, GetEntry: getEntry, GetValue: getValue}, nil
}

func lookup(syms csdinspect.SymbolTable, name string) (csdinspect.Function, error) {
	fn, err := syms.LookupFunction(name)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		// Providers should error instead, but a silent null must never
		// leak into traversal.
		return nil, errors.SymbolNotFound(name)
	}
	return fn, nil
}
