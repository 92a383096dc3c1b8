// Package layout assigns data-memory addresses to the CONST, STR, VAR, and
// ALLOC bindings of a program and builds the data-memory image's initial
// contents.
//
// Addresses are assigned in four fixed phases, each processed in source
// declaration order, so that later phases can always forward-reference
// earlier ones (for example, an alloc's size may name a const declared
// anywhere in the source, including after the alloc itself):
//
//	1. const   1 word per constant, holding its literal value
//	2. str     1 + len(text) words: a length word followed by the text,
//	           one 32-bit codepoint per word
//	3. var     1 word, initialized to zero
//	4. alloc   n words, initialized to zero
//
// Names are unique across all four phases; a duplicate is fatal regardless
// of which phase it is declared in.
package layout
