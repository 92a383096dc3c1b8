package forth

import "text/scanner"

// Program is the root of the parsed AST: the bindings declared by the
// source file, in declaration order, followed by the top-level statement
// sequence that runs as the program's entry point.
type Program struct {
	Bindings []Binding
	Body     Body
}

// Body is an ordered sequence of statements, as found in a definition body,
// the top-level program, or the arm of a control-flow construct.
type Body []Statement

// Binding is implemented by every top-level declaration/definition node:
// Definition, Variable, StringLit, Const, Alloc, Vector.
type Binding interface {
	bindingNode()
}

// Definition is a named, callable procedure: ": name ... ;".
type Definition struct {
	Name string
	Body Body
	Pos  scanner.Position
}

// Variable reserves a single data-memory cell: "var name".
type Variable struct {
	Name string
	Pos  scanner.Position
}

// StringLit declares a Pascal-style string constant: `str name "text"`.
type StringLit struct {
	Name string
	Text string
	Pos  scanner.Position
}

// Const declares a compile-time constant: "const name N" (N is a literal,
// never another const).
type Const struct {
	Name  string
	Value int64
	Pos   scanner.Position
}

// SizeRef is a size/port operand that may be given either as a literal
// number or as the name of a previously declared const.
type SizeRef struct {
	Number   int64
	ConstRef string
	IsConst  bool
}

// Alloc reserves an n-cell block: "alloc name (N | const-name)".
type Alloc struct {
	Name string
	Size SizeRef
	Pos  scanner.Position
}

// Vector binds an interrupt port to a handler procedure:
// "vector (N | const-name) : handler-name".
type Vector struct {
	Port        SizeRef
	HandlerName string
	Pos         scanner.Position
}

func (*Definition) bindingNode() {}
func (*Variable) bindingNode()   {}
func (*StringLit) bindingNode()  {}
func (*Const) bindingNode()      {}
func (*Alloc) bindingNode()      {}
func (*Vector) bindingNode()     {}

// Statement is implemented by every statement node: NumberStmt, StringStmt,
// IdentStmt, IfStmt, BeginLoop, TimesLoop.
type Statement interface {
	statementNode()
}

// NumberStmt pushes a literal integer.
type NumberStmt struct {
	Value int64
	Pos   scanner.Position
}

// StringStmt carries literal string text, consumed either by a `str`
// binding or as the operand of a preceding `."` marker.
type StringStmt struct {
	Text string
	Pos  scanner.Position
}

// IdentStmt is any token not otherwise recognized by the grammar: an
// operator symbol, a primitive word, or a user-defined name. Resolving it
// is codegen's responsibility.
type IdentStmt struct {
	Name string
	Pos  scanner.Position
}

// IfStmt is "if THEN-BODY [else ELSE-BODY] then". Else is nil when absent.
type IfStmt struct {
	Then Body
	Else Body
	Pos  scanner.Position
}

// BeginLoop is "begin BODY until": BODY runs at least once, repeating while
// the value left on the stack at "until" is zero (false).
type BeginLoop struct {
	Body Body
	Pos  scanner.Position
}

// TimesLoop is "times BODY next": BODY runs the number of times given by
// the value popped at "times". The count is tested after BODY, so a count
// of zero or less still runs BODY once.
type TimesLoop struct {
	Body Body
	Pos  scanner.Position
}

func (NumberStmt) statementNode() {}
func (StringStmt) statementNode() {}
func (IdentStmt) statementNode()  {}
func (*IfStmt) statementNode()    {}
func (*BeginLoop) statementNode() {}
func (*TimesLoop) statementNode() {}
