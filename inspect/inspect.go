// Package inspect turns CSG list and entry-reference values into readable
// element sequences.
//
// Inspect is the single entry point: it classifies an arbitrary inspected
// value, and for recognized CSG types returns a Rendering with a one-line
// summary and a lazy child sequence. Unrecognized values return nil with
// no error, so a host debugger can fall through to its other printers.
package inspect

import (
	"strings"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/internal/typename"
)

// nsPrefix is the qualified-name prefix every CSG type carries.
const nsPrefix = "csg::"

// entryRefName is the base name of the tagged reference union.
const entryRefName = "entry_ref_union"

// Hint tells the host how to display a rendering's children.
type Hint uint8

const (
	// HintPlain renders children as ordinary named members.
	HintPlain Hint = iota
	// HintSequence renders children as an indexed sequence.
	HintSequence
)

// Child is one (label, value) pair produced by a rendering.
type Child struct {
	Label string
	Value csdinspect.Value
}

// Rendering is the decoded view of one inspected value.
type Rendering interface {
	// Summary returns the one-line description.
	Summary() string

	// Children returns the rendering's child sequence. The sequence is
	// lazy, one-shot and forward-only; repeated calls return the same
	// sequence, not a fresh traversal.
	Children() *Seq

	// Hint reports how the children should be displayed.
	Hint() Hint
}

// Seq is a lazy, one-shot, forward-only child sequence. The consumer may
// simply stop calling Next at any point; no resources are held between
// pulls.
type Seq struct {
	advance func() (Child, bool, error)
	err     error
	done    bool
}

// Next produces the next child. It returns ok == false when the sequence
// is exhausted or a step failed; Err distinguishes the two. Children
// produced before a failure remain valid.
func (s *Seq) Next() (Child, bool) {
	if s.done {
		return Child{}, false
	}
	c, ok, err := s.advance()
	if err != nil {
		s.err = err
		s.done = true
		return Child{}, false
	}
	if !ok {
		s.done = true
	}
	return c, ok
}

// Err returns the failure that terminated the sequence, or nil after a
// clean end.
func (s *Seq) Err() error { return s.err }

// Inspect classifies an inspected value and returns its rendering.
//
// The result is nil (with a nil error) when the value is not a CSG list or
// entry reference: wrong kind, wrong namespace, or an unrecognized name.
// A non-nil error means the value was recognized but could not be decoded;
// symbol resolution failures and memory read failures surface here or,
// for reads during traversal, through Seq.Err.
func Inspect(v csdinspect.Value, syms csdinspect.SymbolTable) (Rendering, error) {
	canon := v.Type().StripTypedefs()
	if k := canon.Kind(); k != csdinspect.KindStruct && k != csdinspect.KindUnion {
		return nil, nil
	}

	name := canon.Name()
	if !strings.HasPrefix(name, nsPrefix) {
		return nil, nil
	}
	base := typename.Normalize(name[len(nsPrefix):])

	if base == entryRefName {
		return newRefRendering(v)
	}
	if flavor, ok := ClassifyFlavor(base); ok {
		return newListRendering(v, flavor, syms)
	}
	return nil, nil
}
