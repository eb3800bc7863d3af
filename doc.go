// Package csdinspect renders the logical contents of CSG intrusive list
// structures from a target program's memory.
//
// The CSG library links elements through entry structs and a tagged
// reference word whose low bit selects between "points at an element" and
// "points at an entry". Walking such a list from outside the program
// requires decoding that word and calling the list's specialized
// entry_ref_codec accessor functions, which must be found in the target's
// symbol table by reconstructing their exact ABI name text.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	csd-inspect/         Root package with the Type, Value, Function and
//	│                    SymbolTable provider interfaces
//	├── inspect/         Flavor classification, tagged reference decoding
//	│                    and lazy list traversal
//	├── codec/           entry_ref_codec name construction and accessor
//	│                    symbol resolution
//	├── registry/        Per-binary-image registration of inspectors
//	├── memview/         Descriptor-backed types and memory-backed values
//	│                    over a raw address space
//	├── simtarget/       Canned in-process target for tests and demos
//	├── engine/          wazero-backed target for wasm32 builds
//	└── errors/          Structured error types
//
// # Quick Start
//
// Given a Value for a list head obtained from a provider:
//
//	r, err := inspect.Inspect(v, symbols)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if r == nil {
//	    return // not a CSG type
//	}
//	fmt.Println(r.Summary())
//	seq := r.Children()
//	for c, ok := seq.Next(); ok; c, ok = seq.Next() {
//	    fmt.Printf("%s = %s\n", c.Label, c.Value.Format())
//	}
//	if err := seq.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Read-Only Model
//
// Everything is point-in-time introspection: the core allocates nothing in
// the target, never writes, and holds no resources between pulls. Sequences
// are lazy, one-shot and forward-only; re-inspecting re-reads live memory
// and may observe a different list if the target moved on.
package csdinspect
