// Package forth implements the front end of the translator: source file
// inclusion, tokenizing, and parsing of the Forth-flavoured stack language
// into an AST.
//
// Pipeline for a single source file:
//
//	Preprocess  inlines #require <path> lines, detecting include cycles
//	Tokenize    turns preprocessed text into a flat []Token
//	Parse       turns []Token into a *Program
//
// Grammar summary (keywords are reserved and cannot be used as identifiers):
//
//	binding    ::= ':' IDENT statement* ';'            (definition)
//	             | 'var' IDENT                         (variable, 1 cell)
//	             | 'str' IDENT STRING                   (Pascal string)
//	             | 'const' IDENT NUMBER                  (compile-time constant)
//	             | 'alloc' IDENT (NUMBER | IDENT)        (reserved block)
//	             | 'vector' (NUMBER | IDENT) ':' IDENT    (interrupt vector)
//	statement  ::= NUMBER | STRING | 'if' ... 'then'
//	             | 'begin' ... 'until' | 'times' ... 'next'
//	             | IDENT
//
// Any token that is not consumed by one of the above becomes an Ident
// statement, including operator symbols such as "+" or "."; it is
// codegen's job, not the parser's, to decide whether an identifier names a
// primitive word, a user definition, or a symbol-table entry.
package forth
