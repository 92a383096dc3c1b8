// Package codegen lowers a parsed program into a flat instruction stream.
//
// Emitter tracks the instruction list being built along with a word-address
// program counter, label definitions, and a queue of forward references to
// patch once all labels are known. Generator drives the lowering of the
// AST's bindings and statements into Emitter calls, using package layout to
// resolve identifier references to data-memory addresses or constant
// values.
package codegen
