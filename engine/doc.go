// Package engine runs WebAssembly images as live inspection targets.
//
// A Target wraps a wazero runtime holding one instantiated core module. Its
// exported linear memory backs value decoding (the Target is a memview.Space),
// and its exported functions back accessor resolution: Symbols adapts the
// module's export table into a symbol table whose functions execute inside
// the guest.
//
// Wasm export metadata carries no C++ type information, so the caller
// supplies the result type of each accessor through a callback when building
// the symbol table.
package engine
