package codegen

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/mip3x/csa-lab-iv/isa"
	"github.com/mip3x/csa-lab-iv/lang/forth"
	"github.com/mip3x/csa-lab-iv/layout"
)

const (
	entryLabel = "__entry_main"
	vectorBase = 1

	stdinPort  uint16 = 1
	stdoutPort uint16 = 2
)

// printStringMarker mirrors the lexeme forth.Tokenize produces for "."
// followed immediately by a double quote.
const printStringMarker = `."`

// Generator lowers a *forth.Program into a flat instruction stream plus its
// data-memory image. Every piece of mutable state it needs (the fresh-label
// counter included) lives on the Generator value, never in a package-level
// variable, so Generate is safe to call repeatedly and concurrently.
type Generator struct {
	em       *Emitter
	table    *layout.Table
	procs    map[string]forth.Body
	labelSeq int
}

// Generate lays out prog's data bindings, then lowers its procedures,
// interrupt vectors, and top-level body into an instruction stream.
func Generate(prog *forth.Program) ([]isa.Instruction, []int32, error) {
	g := &Generator{em: NewEmitter(), procs: make(map[string]forth.Body)}

	g.em.EmitJumpToLabel(entryLabel, isa.OpJmp)

	table, err := layout.Build(prog)
	if err != nil {
		return nil, nil, err
	}
	g.table = table

	for _, b := range prog.Bindings {
		if d, ok := b.(*forth.Definition); ok {
			if _, exists := g.procs[d.Name]; exists {
				return nil, nil, errors.Errorf("duplicate definition: %s", d.Name)
			}
			g.procs[d.Name] = d.Body
		}
	}

	vectors := make(map[int]string)
	for _, b := range prog.Bindings {
		v, ok := b.(*forth.Vector)
		if !ok {
			continue
		}
		port, err := g.resolveSizeRef(v.Port)
		if err != nil {
			return nil, nil, errors.Wrap(err, "vector")
		}
		if _, exists := vectors[port]; exists {
			return nil, nil, errors.Errorf("duplicate interrupt vector for port %d", port)
		}
		vectors[port] = v.HandlerName
	}

	for g.em.PCWords < vectorBase {
		g.em.Emit(isa.Instruction{Op: isa.OpNop})
	}

	for _, port := range sortedPorts(vectors) {
		target := vectorBase + port
		for g.em.PCWords < target {
			g.em.Emit(isa.Instruction{Op: isa.OpNop})
		}
		g.em.EmitJumpToLabel(vectors[port], isa.OpJmp)
	}

	for _, b := range prog.Bindings {
		d, ok := b.(*forth.Definition)
		if !ok {
			continue
		}
		g.em.Mark(d.Name)
		if err := g.genBody(d.Body); err != nil {
			return nil, nil, errors.Wrapf(err, "in definition %s", d.Name)
		}
		g.em.Emit(isa.Instruction{Op: isa.OpRet})
	}

	g.em.Mark(entryLabel)
	if err := g.genBody(prog.Body); err != nil {
		return nil, nil, err
	}
	g.em.Emit(isa.Instruction{Op: isa.OpHalt})

	if err := g.em.PatchAll(); err != nil {
		return nil, nil, err
	}

	return g.em.Code, table.Words, nil
}

func sortedPorts(m map[int]string) []int {
	ports := make([]int, 0, len(m))
	for p := range m {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}

func (g *Generator) resolveSizeRef(ref forth.SizeRef) (int, error) {
	if !ref.IsConst {
		return int(ref.Number), nil
	}
	return g.table.ResolveConstInt(ref.ConstRef)
}

func (g *Generator) freshLabel(prefix string) string {
	g.labelSeq++
	return fmt.Sprintf("%s_%d", prefix, g.labelSeq)
}

func (g *Generator) genBody(body forth.Body) error {
	i := 0
	for i < len(body) {
		stmt := body[i]
		switch s := stmt.(type) {
		case forth.NumberStmt:
			g.em.Emit(pushImm(int32(s.Value)))
			i++
		case forth.StringStmt:
			g.genPrintString(s.Text)
			i++
		case *forth.IfStmt:
			if err := g.genIf(s); err != nil {
				return err
			}
			i++
		case *forth.BeginLoop:
			if err := g.genBegin(s); err != nil {
				return err
			}
			i++
		case *forth.TimesLoop:
			if err := g.genTimes(s); err != nil {
				return err
			}
			i++
		case forth.IdentStmt:
			consumed, err := g.genIdent(s, body, i)
			if err != nil {
				return err
			}
			i += consumed
		default:
			return errors.Errorf("unhandled statement node %T", stmt)
		}
	}
	return nil
}

func (g *Generator) genIf(s *forth.IfStmt) error {
	g.em.Emit(popReg(isa.EAX))
	g.em.Emit(cmpRegImm(isa.EAX, 0))

	if s.Else != nil {
		elseLabel := g.freshLabel("if_else")
		endLabel := g.freshLabel("if_end")
		g.em.EmitJumpToLabel(elseLabel, isa.OpJeq)
		if err := g.genBody(s.Then); err != nil {
			return err
		}
		g.em.EmitJumpToLabel(endLabel, isa.OpJmp)
		g.em.Mark(elseLabel)
		if err := g.genBody(s.Else); err != nil {
			return err
		}
		g.em.Mark(endLabel)
		return nil
	}

	endLabel := g.freshLabel("if_end")
	g.em.EmitJumpToLabel(endLabel, isa.OpJeq)
	if err := g.genBody(s.Then); err != nil {
		return err
	}
	g.em.Mark(endLabel)
	return nil
}

func (g *Generator) genBegin(s *forth.BeginLoop) error {
	loopLabel := g.freshLabel("begin_loop")
	g.em.Mark(loopLabel)
	if err := g.genBody(s.Body); err != nil {
		return err
	}
	g.em.Emit(popReg(isa.EAX))
	g.em.Emit(cmpRegImm(isa.EAX, 0))
	g.em.EmitJumpToLabel(loopLabel, isa.OpJeq)
	return nil
}

func (g *Generator) genTimes(s *forth.TimesLoop) error {
	loopLabel := g.freshLabel("times_loop")
	g.em.Emit(popReg(isa.ECX))
	g.em.Emit(pushRS(isa.ECX))
	g.em.Mark(loopLabel)
	if err := g.genBody(s.Body); err != nil {
		return err
	}
	g.em.Emit(popRS(isa.ECX))
	g.em.Emit(subImm(isa.ECX, isa.ECX, 1))
	g.em.Emit(pushRS(isa.ECX))
	g.em.Emit(cmpRegImm(isa.ECX, 0))
	g.em.EmitJumpToLabel(loopLabel, isa.OpJgt)
	g.em.Emit(popRS(isa.ECX))
	return nil
}

func (g *Generator) genBinop(op isa.Opcode) {
	g.em.Emit(popReg(isa.EBX))
	g.em.Emit(popReg(isa.EAX))
	g.em.Emit(binop(op, isa.EAX, isa.EAX, isa.EBX))
	g.em.Emit(pushReg(isa.EAX))
}

func (g *Generator) genUnop(op isa.Opcode) {
	g.em.Emit(popReg(isa.EAX))
	g.em.Emit(unop(op, isa.EAX, isa.EAX))
	g.em.Emit(pushReg(isa.EAX))
}

func (g *Generator) genCompare(cond isa.Opcode) {
	g.em.Emit(popReg(isa.EBX))
	g.em.Emit(popReg(isa.EAX))
	g.em.Emit(cmpRegReg(isa.EAX, isa.EBX))

	trueLabel := g.freshLabel("cmp_true")
	endLabel := g.freshLabel("cmp_end")
	g.em.EmitJumpToLabel(trueLabel, cond)
	g.em.Emit(pushImm(0))
	g.em.EmitJumpToLabel(endLabel, isa.OpJmp)
	g.em.Mark(trueLabel)
	g.em.Emit(pushImm(-1))
	g.em.Mark(endLabel)
}

func (g *Generator) genPrintString(s string) {
	for _, r := range s {
		g.em.Emit(movImm(isa.DR, int32(r)))
		g.em.Emit(ioOut(stdoutPort))
	}
}

func (g *Generator) genCall(name string) {
	nextAddr := int32(g.em.PCWords + 4)
	g.em.Emit(pushRSImm(nextAddr))
	g.em.EmitJumpToLabel(name, isa.OpJmp)
}

// genIdent lowers a single identifier statement at index i of body,
// returning how many body entries it consumed (2 for the `."` marker
// followed by its string/ident operand, 1 otherwise).
func (g *Generator) genIdent(s forth.IdentStmt, body forth.Body, i int) (int, error) {
	switch s.Name {
	case "dup":
		g.em.Emit(popReg(isa.EAX))
		g.em.Emit(pushReg(isa.EAX))
		g.em.Emit(pushReg(isa.EAX))
		return 1, nil
	case "swap":
		g.em.Emit(popReg(isa.EAX))
		g.em.Emit(popReg(isa.EBX))
		g.em.Emit(pushReg(isa.EAX))
		g.em.Emit(pushReg(isa.EBX))
		return 1, nil
	case "drop":
		g.em.Emit(popReg(isa.R10))
		return 1, nil
	case "over":
		g.em.Emit(popReg(isa.EAX))
		g.em.Emit(popReg(isa.EBX))
		g.em.Emit(pushReg(isa.EBX))
		g.em.Emit(pushReg(isa.EAX))
		g.em.Emit(pushReg(isa.EBX))
		return 1, nil
	case "rot":
		g.em.Emit(popReg(isa.EAX))
		g.em.Emit(popReg(isa.EBX))
		g.em.Emit(popReg(isa.ECX))
		g.em.Emit(pushReg(isa.EBX))
		g.em.Emit(pushReg(isa.EAX))
		g.em.Emit(pushReg(isa.ECX))
		return 1, nil
	case "nip":
		g.em.Emit(popReg(isa.EAX))
		g.em.Emit(popReg(isa.EBX))
		g.em.Emit(pushReg(isa.EAX))
		return 1, nil
	case ">r":
		g.em.Emit(popReg(isa.EFX))
		g.em.Emit(pushRS(isa.EFX))
		return 1, nil
	case "r>":
		g.em.Emit(popRS(isa.EFX))
		g.em.Emit(pushReg(isa.EFX))
		return 1, nil
	case "r@":
		g.em.Emit(popRS(isa.EFX))
		g.em.Emit(pushRS(isa.EFX))
		g.em.Emit(pushReg(isa.EFX))
		return 1, nil
	case "@":
		g.em.Emit(popReg(isa.EDX))
		g.em.Emit(fetchInd(isa.EAX, isa.EDX))
		g.em.Emit(pushReg(isa.EAX))
		return 1, nil
	case "!":
		g.em.Emit(popReg(isa.EAX))
		g.em.Emit(popReg(isa.EDX))
		g.em.Emit(storeInd(isa.EDX, isa.EAX))
		return 1, nil
	case "+":
		g.genBinop(isa.OpAdd)
		return 1, nil
	case "-":
		g.genBinop(isa.OpSub)
		return 1, nil
	case "*":
		g.genBinop(isa.OpMul)
		return 1, nil
	case "/":
		g.genBinop(isa.OpDiv)
		return 1, nil
	case "mod":
		g.genBinop(isa.OpMod)
		return 1, nil
	case "and":
		g.genBinop(isa.OpAnd)
		return 1, nil
	case "or":
		g.genBinop(isa.OpOr)
		return 1, nil
	case "xor":
		g.genBinop(isa.OpXor)
		return 1, nil
	case "not":
		g.genUnop(isa.OpNot)
		return 1, nil
	case "neg":
		g.genUnop(isa.OpNeg)
		return 1, nil
	case "=":
		g.genCompare(isa.OpJeq)
		return 1, nil
	case "<":
		g.genCompare(isa.OpJlt)
		return 1, nil
	case ">":
		g.genCompare(isa.OpJgt)
		return 1, nil
	case "<=":
		g.genCompare(isa.OpJle)
		return 1, nil
	case ">=":
		g.genCompare(isa.OpJge)
		return 1, nil
	case ".", "emit":
		g.em.Emit(popReg(isa.DR))
		g.em.Emit(ioOut(stdoutPort))
		return 1, nil
	case "key":
		g.em.Emit(ioIn(stdinPort))
		g.em.Emit(pushReg(isa.DR))
		return 1, nil
	case "cr":
		g.em.Emit(movImm(isa.DR, 13))
		g.em.Emit(ioOut(stdoutPort))
		g.em.Emit(movImm(isa.DR, 10))
		g.em.Emit(ioOut(stdoutPort))
		return 1, nil
	case printStringMarker:
		if i+1 >= len(body) {
			return 0, errors.Errorf(`%s: expected a string after ."`, s.Pos)
		}
		var text string
		switch next := body[i+1].(type) {
		case forth.StringStmt:
			text = next.Text
		case forth.IdentStmt:
			text = next.Name
		default:
			return 0, errors.Errorf(`%s: expected a string or identifier after ."`, s.Pos)
		}
		g.genPrintString(text)
		return 2, nil
	case "_enable_int_":
		g.em.Emit(isa.Instruction{Op: isa.OpEnInt})
		return 1, nil
	case "_disable_int_":
		g.em.Emit(isa.Instruction{Op: isa.OpDisInt})
		return 1, nil
	case "_iret_":
		g.em.Emit(isa.Instruction{Op: isa.OpIret})
		return 1, nil
	case "_exit_":
		g.em.Emit(isa.Instruction{Op: isa.OpHalt})
		return 1, nil
	}

	if _, ok := g.procs[s.Name]; ok {
		g.genCall(s.Name)
		return 1, nil
	}

	if sym, ok := g.table.Lookup(s.Name); ok {
		if sym.Kind == layout.KindConst {
			g.em.Emit(pushImm(int32(sym.Value)))
		} else {
			g.em.Emit(pushImm(int32(sym.Addr)))
		}
		return 1, nil
	}

	return 0, errors.Errorf("%s: unknown word: %s", s.Pos, s.Name)
}
