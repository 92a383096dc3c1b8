// Package compiler ties the translator's pipeline together: preprocess,
// tokenize, parse, generate code (which lays out data memory and patches
// labels internally), encode, and disassemble — then, separately, persist
// the result to disk.
//
// Compile returns fully resolved in-memory Artifacts or an error; nothing
// is written to disk until Write is called, and Write is only ever called
// with a fully resolved Artifacts value, so a fatal error at any pipeline
// stage never leaves partial output files behind.
package compiler
