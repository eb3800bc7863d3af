package simtarget

import (
	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/errors"
)

// Func adapts a Go function to the csdinspect.Function interface.
type Func func(args ...csdinspect.Value) (csdinspect.Value, error)

func (f Func) Call(args ...csdinspect.Value) (csdinspect.Value, error) {
	return f(args...)
}

// SymbolMap is a symbol table with exact-name lookup: the canned
// equivalent of a target binary's symbol table.
type SymbolMap struct {
	funcs map[string]csdinspect.Function
	data  map[string]bool
}

func NewSymbolMap() *SymbolMap {
	return &SymbolMap{
		funcs: make(map[string]csdinspect.Function),
		data:  make(map[string]bool),
	}
}

// Define installs a function symbol under its qualified name.
func (m *SymbolMap) Define(name string, fn csdinspect.Function) {
	m.funcs[name] = fn
}

// DefineData installs a non-function symbol, so lookups can distinguish
// "absent" from "present but not callable".
func (m *SymbolMap) DefineData(name string) {
	m.data[name] = true
}

// Remove deletes a symbol. Tests use it to simulate binaries compiled
// without the needed instantiation.
func (m *SymbolMap) Remove(name string) {
	delete(m.funcs, name)
	delete(m.data, name)
}

// LookupFunction implements csdinspect.SymbolTable.
func (m *SymbolMap) LookupFunction(name string) (csdinspect.Function, error) {
	if m.data[name] {
		return nil, errors.NotAFunction(name)
	}
	fn, ok := m.funcs[name]
	if !ok {
		return nil, errors.SymbolNotFound(name)
	}
	return fn, nil
}
