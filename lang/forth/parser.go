package forth

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/pkg/errors"
)

// keywords are reserved and may never be used as an identifier name.
var keywords = map[string]bool{
	"if": true, "else": true, "then": true,
	"begin": true, "until": true,
	"times": true, "next": true,
	"var": true, "const": true, "str": true, "alloc": true, "vector": true,
}

// declWords introduce a top-level binding rather than a statement.
var declWords = map[string]bool{
	"var": true, "const": true, "str": true, "alloc": true, "vector": true,
}

type parser struct {
	file string
	toks []Token
	pos  int
}

// Parse turns a token stream produced by Tokenize into a Program. Parsing
// stops at the first syntax error; there is no error recovery.
func Parse(file string, toks []Token) (*Program, error) {
	p := &parser{file: file, toks: toks}
	return p.parseProgram()
}

func (p *parser) cur() *Token {
	if p.pos >= len(p.toks) {
		return nil
	}
	return &p.toks[p.pos]
}

func (p *parser) advance() *Token {
	t := p.cur()
	p.pos++
	return t
}

func (p *parser) eofPos() scanner.Position {
	if n := len(p.toks); n > 0 {
		last := p.toks[n-1]
		return scanner.Position{Filename: last.Pos.Filename, Line: last.Pos.Line, Column: last.Pos.Column + len(last.Text)}
	}
	return scanner.Position{Filename: p.file, Line: 1, Column: 1}
}

func (p *parser) errf(pos scanner.Position, format string, args ...interface{}) error {
	return errors.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
}

func (p *parser) unexpectedEOF(expecting string) error {
	return p.errf(p.eofPos(), "unexpected end of input, expected %s", expecting)
}

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for p.cur() != nil {
		t := p.cur()
		switch {
		case t.Kind == Sym && t.Text == ":":
			def, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}
			prog.Bindings = append(prog.Bindings, def)
		case t.Kind == Word && declWords[t.Text]:
			decl, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}
			prog.Bindings = append(prog.Bindings, decl)
		default:
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			prog.Body = append(prog.Body, stmt)
		}
	}
	return prog, nil
}

// parseIdent consumes the current token, of any kind, to use as an
// identifier name, rejecting reserved keywords.
func (p *parser) parseIdent() (string, scanner.Position, error) {
	t := p.cur()
	if t == nil {
		return "", p.eofPos(), p.unexpectedEOF("an identifier")
	}
	if t.Kind == Word && keywords[t.Text] {
		return "", t.Pos, p.errf(t.Pos, "keyword %q cannot be used as an identifier", t.Text)
	}
	p.advance()
	return t.Text, t.Pos, nil
}

func (p *parser) expectSym(sym string) (scanner.Position, error) {
	t := p.cur()
	if t == nil {
		return p.eofPos(), p.unexpectedEOF(fmt.Sprintf("%q", sym))
	}
	if t.Kind != Sym || t.Text != sym {
		return t.Pos, p.errf(t.Pos, "expected %q, got %q", sym, t.Text)
	}
	p.advance()
	return t.Pos, nil
}

func (p *parser) expectWord(word string) (scanner.Position, error) {
	t := p.cur()
	if t == nil {
		return p.eofPos(), p.unexpectedEOF(word)
	}
	if t.Kind != Word || t.Text != word {
		return t.Pos, p.errf(t.Pos, "expected %q, got %q", word, t.Text)
	}
	p.advance()
	return t.Pos, nil
}

func (p *parser) parseNumberLiteral() (int64, scanner.Position, error) {
	t := p.cur()
	if t == nil {
		return 0, p.eofPos(), p.unexpectedEOF("a number")
	}
	if t.Kind != Number {
		return 0, t.Pos, p.errf(t.Pos, "expected a numeric literal, got %q", t.Text)
	}
	p.advance()
	return t.Value, t.Pos, nil
}

func (p *parser) parseNumberOrConst() (SizeRef, error) {
	t := p.cur()
	if t == nil {
		return SizeRef{}, p.unexpectedEOF("a number or constant name")
	}
	if t.Kind == Number {
		p.advance()
		return SizeRef{Number: t.Value}, nil
	}
	name, _, err := p.parseIdent()
	if err != nil {
		return SizeRef{}, err
	}
	return SizeRef{ConstRef: name, IsConst: true}, nil
}

func (p *parser) parseString() (string, scanner.Position, error) {
	t := p.cur()
	if t == nil {
		return "", p.eofPos(), p.unexpectedEOF("a string literal")
	}
	if t.Kind != String {
		return "", t.Pos, p.errf(t.Pos, "expected a string literal, got %q", t.Text)
	}
	p.advance()
	return t.Text, t.Pos, nil
}

// parseBody consumes statements until the current token is a Word in stop,
// without consuming the stop word itself.
func (p *parser) parseBody(stop map[string]bool) (Body, error) {
	return p.parseBodyUntil(func(t *Token) bool {
		return t.Kind == Word && stop[t.Text]
	}, joinStop(stop))
}

// parseBodyUntil consumes statements until stop(cur) is true, without
// consuming the stopping token.
func (p *parser) parseBodyUntil(stop func(*Token) bool, expecting string) (Body, error) {
	var body Body
	for {
		t := p.cur()
		if t == nil {
			return nil, p.unexpectedEOF(expecting)
		}
		if stop(t) {
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

func joinStop(stop map[string]bool) string {
	names := make([]string, 0, len(stop))
	for k := range stop {
		names = append(names, k)
	}
	return strings.Join(names, " or ")
}

func (p *parser) parseStatement() (Statement, error) {
	t := p.cur()
	if t == nil {
		return nil, p.unexpectedEOF("a statement")
	}

	switch {
	case t.Kind == Number:
		p.advance()
		return NumberStmt{Value: t.Value, Pos: t.Pos}, nil
	case t.Kind == String:
		p.advance()
		return StringStmt{Text: t.Text, Pos: t.Pos}, nil
	case t.Kind == Word && t.Text == "if":
		return p.parseIf()
	case t.Kind == Word && t.Text == "begin":
		return p.parseBegin()
	case t.Kind == Word && t.Text == "times":
		return p.parseTimes()
	default:
		name, pos, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return IdentStmt{Name: name, Pos: pos}, nil
	}
}

func (p *parser) parseIf() (Statement, error) {
	pos, err := p.expectWord("if")
	if err != nil {
		return nil, err
	}
	then, err := p.parseBody(map[string]bool{"else": true, "then": true})
	if err != nil {
		return nil, err
	}
	t := p.cur()
	if t != nil && t.Kind == Word && t.Text == "else" {
		p.advance()
		elseBody, err := p.parseBody(map[string]bool{"then": true})
		if err != nil {
			return nil, err
		}
		if _, err := p.expectWord("then"); err != nil {
			return nil, err
		}
		return &IfStmt{Then: then, Else: elseBody, Pos: pos}, nil
	}
	if _, err := p.expectWord("then"); err != nil {
		return nil, err
	}
	return &IfStmt{Then: then, Pos: pos}, nil
}

func (p *parser) parseBegin() (Statement, error) {
	pos, err := p.expectWord("begin")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody(map[string]bool{"until": true})
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("until"); err != nil {
		return nil, err
	}
	return &BeginLoop{Body: body, Pos: pos}, nil
}

func (p *parser) parseTimes() (Statement, error) {
	pos, err := p.expectWord("times")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody(map[string]bool{"next": true})
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("next"); err != nil {
		return nil, err
	}
	return &TimesLoop{Body: body, Pos: pos}, nil
}

func (p *parser) parseDeclaration() (Binding, error) {
	kw := p.advance()
	switch kw.Text {
	case "var":
		name, pos, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return &Variable{Name: name, Pos: pos}, nil
	case "str":
		name, pos, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		text, _, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return &StringLit{Name: name, Text: text, Pos: pos}, nil
	case "const":
		name, pos, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		v, _, err := p.parseNumberLiteral()
		if err != nil {
			return nil, err
		}
		return &Const{Name: name, Value: v, Pos: pos}, nil
	case "alloc":
		name, pos, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		size, err := p.parseNumberOrConst()
		if err != nil {
			return nil, err
		}
		return &Alloc{Name: name, Size: size, Pos: pos}, nil
	case "vector":
		port, err := p.parseNumberOrConst()
		if err != nil {
			return nil, err
		}
		pos, err := p.expectSym(":")
		if err != nil {
			return nil, err
		}
		handler, _, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		return &Vector{Port: port, HandlerName: handler, Pos: pos}, nil
	default:
		return nil, p.errf(kw.Pos, "unexpected declaration keyword %q", kw.Text)
	}
}

func (p *parser) parseDefinition() (*Definition, error) {
	pos, err := p.expectSym(":")
	if err != nil {
		return nil, err
	}
	name, _, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBodyUntil(func(t *Token) bool {
		return t.Kind == Sym && t.Text == ";"
	}, `";"`)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}
	return &Definition{Name: name, Body: body, Pos: pos}, nil
}
