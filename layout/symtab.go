package layout

import (
	"github.com/pkg/errors"

	"github.com/mip3x/csa-lab-iv/lang/forth"
)

// Kind identifies which of the four binding phases a Symbol came from.
type Kind int

const (
	KindConst Kind = iota
	KindVar
	KindStr
	KindAlloc
)

var kindNames = [...]string{"const", "var", "str", "alloc"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Symbol is one entry of the data-memory symbol table.
type Symbol struct {
	Name  string
	Kind  Kind
	Addr  int
	Size  int
	Value int64 // meaningful only for KindConst
}

// Table is the result of laying out a program's CONST/STR/VAR/ALLOC
// bindings: a name-to-Symbol index plus the resulting data-memory image.
type Table struct {
	syms  map[string]*Symbol
	names []string
	Words []int32
}

// Build lays out every CONST, STR, VAR, and ALLOC binding in prog across
// the four fixed phases, returning the resulting symbol table and
// data-memory image.
func Build(prog *forth.Program) (*Table, error) {
	t := &Table{syms: make(map[string]*Symbol)}

	for _, b := range prog.Bindings {
		c, ok := b.(*forth.Const)
		if !ok {
			continue
		}
		if err := t.declare(c.Name); err != nil {
			return nil, err
		}
		addr := len(t.Words)
		t.Words = append(t.Words, int32(c.Value))
		t.add(&Symbol{Name: c.Name, Kind: KindConst, Addr: addr, Size: 1, Value: c.Value})
	}

	for _, b := range prog.Bindings {
		s, ok := b.(*forth.StringLit)
		if !ok {
			continue
		}
		if err := t.declare(s.Name); err != nil {
			return nil, err
		}
		runes := []rune(s.Text)
		addr := len(t.Words)
		t.Words = append(t.Words, int32(len(runes)))
		for _, r := range runes {
			t.Words = append(t.Words, int32(r))
		}
		t.add(&Symbol{Name: s.Name, Kind: KindStr, Addr: addr, Size: 1 + len(runes)})
	}

	for _, b := range prog.Bindings {
		v, ok := b.(*forth.Variable)
		if !ok {
			continue
		}
		if err := t.declare(v.Name); err != nil {
			return nil, err
		}
		addr := len(t.Words)
		t.Words = append(t.Words, 0)
		t.add(&Symbol{Name: v.Name, Kind: KindVar, Addr: addr, Size: 1})
	}

	for _, b := range prog.Bindings {
		a, ok := b.(*forth.Alloc)
		if !ok {
			continue
		}
		if err := t.declare(a.Name); err != nil {
			return nil, err
		}
		size, err := t.resolveSize(a.Size)
		if err != nil {
			return nil, errors.Wrapf(err, "alloc %s", a.Name)
		}
		if size < 0 {
			return nil, errors.Errorf("alloc %s: negative size %d", a.Name, size)
		}
		addr := len(t.Words)
		for i := 0; i < size; i++ {
			t.Words = append(t.Words, 0)
		}
		t.add(&Symbol{Name: a.Name, Kind: KindAlloc, Addr: addr, Size: size})
	}

	return t, nil
}

func (t *Table) declare(name string) error {
	if _, exists := t.syms[name]; exists {
		return errors.Errorf("duplicate symbol name: %s", name)
	}
	return nil
}

func (t *Table) add(s *Symbol) {
	t.syms[s.Name] = s
	t.names = append(t.names, s.Name)
}

func (t *Table) resolveSize(ref forth.SizeRef) (int, error) {
	if !ref.IsConst {
		return int(ref.Number), nil
	}
	return t.ResolveConstInt(ref.ConstRef)
}

// Lookup returns the symbol named name, if declared.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.syms[name]
	return s, ok
}

// ResolveAddr returns the data-memory address of the named symbol.
func (t *Table) ResolveAddr(name string) (int, error) {
	s, ok := t.syms[name]
	if !ok {
		return 0, errors.Errorf("undefined symbol: %s", name)
	}
	return s.Addr, nil
}

// ResolveConst returns the literal value of the named const.
func (t *Table) ResolveConst(name string) (int64, error) {
	s, ok := t.syms[name]
	if !ok || s.Kind != KindConst {
		return 0, errors.Errorf("%s is not a constant", name)
	}
	return s.Value, nil
}

// ResolveConstInt is ResolveConst truncated to int, for size/port operands.
func (t *Table) ResolveConstInt(name string) (int, error) {
	v, err := t.ResolveConst(name)
	return int(v), err
}

// Names returns the declared symbol names in phase/declaration order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}
