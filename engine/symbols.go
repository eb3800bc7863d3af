package engine

import (
	"github.com/tetratelabs/wazero/api"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/errors"
	"github.com/csgtools/csd-inspect/memview"
)

// ResultTypeFunc maps an accessor's qualified symbol name to the type of
// the value it returns. Returning nil marks the symbol uncallable.
type ResultTypeFunc func(symbol string) *memview.TypeDesc

// Symbols adapts the target's export table into a symbol table. Lookup is
// by exact export name; the callback supplies each function's result type
// since wasm exports carry none.
func (t *Target) Symbols(resultType ResultTypeFunc) csdinspect.SymbolTable {
	return &symbolTable{target: t, resultType: resultType}
}

type symbolTable struct {
	target     *Target
	resultType ResultTypeFunc
}

func (s *symbolTable) LookupFunction(name string) (csdinspect.Function, error) {
	fn := s.target.module.ExportedFunction(name)
	if fn == nil {
		if s.target.module.ExportedGlobal(name) != nil {
			return nil, errors.NotAFunction(name)
		}
		return nil, errors.SymbolNotFound(name)
	}
	rt := s.resultType(name)
	if rt == nil {
		return nil, errors.TypeMismatch(errors.PhaseResolve, name, "no result type known for export")
	}
	return &guestFunction{target: s.target, name: name, fn: fn, result: rt}, nil
}

// guestFunction executes one exported function inside the guest.
type guestFunction struct {
	target *Target
	name   string
	fn     api.Function
	result *memview.TypeDesc
}

// Call marshals each argument to one stack word and runs the export.
// Scalars and pointers pass by value; aggregates pass by address.
func (f *guestFunction) Call(args ...csdinspect.Value) (csdinspect.Value, error) {
	words := make([]uint64, 0, len(args))
	for i, a := range args {
		w, err := argWord(a)
		if err != nil {
			return nil, errors.New(errors.PhaseResolve, errors.KindTypeMismatch).
				Symbol(f.name).
				Detail("argument %d not marshalable", i).
				Cause(err).
				Build()
		}
		words = append(words, w)
	}

	results, err := f.fn.Call(f.target.ctx, words...)
	if err != nil {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidTarget).
			Symbol(f.name).
			Detail("guest call failed").
			Cause(err).
			Build()
	}
	if len(results) != 1 {
		return nil, errors.TypeMismatch(errors.PhaseResolve, f.name, "export does not return one value")
	}
	return memview.Synth(f.target, f.result, results[0]), nil
}

func argWord(a csdinspect.Value) (uint64, error) {
	if w, err := a.Uint(); err == nil {
		return w, nil
	}
	return a.Addr()
}
