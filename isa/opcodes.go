package isa

import "fmt"

// Opcode identifies a machine instruction. Values match the target
// machine's numbering exactly; they are load-bearing, not arbitrary.
type Opcode uint8

const (
	OpHalt   Opcode = 0x00
	OpPushDS Opcode = 0x01
	OpPopDS  Opcode = 0x02
	OpAdd    Opcode = 0x03
	OpAdc    Opcode = 0x04
	OpSub    Opcode = 0x05
	OpMul    Opcode = 0x06
	OpDiv    Opcode = 0x07
	OpMod    Opcode = 0x08
	OpNeg    Opcode = 0x09
	OpCmp    Opcode = 0x0A
	OpAnd    Opcode = 0x0B
	OpOr     Opcode = 0x0C
	OpXor    Opcode = 0x0D
	OpNot    Opcode = 0x0E
	OpJmp    Opcode = 0x0F
	OpJcc    Opcode = 0x10
	OpJcs    Opcode = 0x11
	OpJeq    Opcode = 0x12
	OpJne    Opcode = 0x13
	OpJlt    Opcode = 0x14
	OpJgt    Opcode = 0x15
	OpJle    Opcode = 0x16
	OpJge    Opcode = 0x17
	OpMov    Opcode = 0x18
	OpNop    Opcode = 0x19
	OpOut    Opcode = 0x1A
	OpIn     Opcode = 0x1B
	OpEnInt  Opcode = 0x1C
	OpDisInt Opcode = 0x1D
	OpIret   Opcode = 0x1E
	OpPushRS Opcode = 0x1F
	OpPopRS  Opcode = 0x20
	OpRet    Opcode = 0x21
)

var mnemonics = map[Opcode]string{
	OpHalt:   "halt",
	OpPushDS: "push_ds",
	OpPopDS:  "pop_ds",
	OpAdd:    "add",
	OpAdc:    "adc",
	OpSub:    "sub",
	OpMul:    "mul",
	OpDiv:    "div",
	OpMod:    "mod",
	OpNeg:    "neg",
	OpCmp:    "cmp",
	OpAnd:    "and",
	OpOr:     "or",
	OpXor:    "xor",
	OpNot:    "not",
	OpJmp:    "jmp",
	OpJcc:    "jcc",
	OpJcs:    "jcs",
	OpJeq:    "jeq",
	OpJne:    "jne",
	OpJlt:    "jlt",
	OpJgt:    "jgt",
	OpJle:    "jle",
	OpJge:    "jge",
	OpMov:    "mov",
	OpNop:    "nop",
	OpOut:    "out",
	OpIn:     "in",
	OpEnInt:  "en_int",
	OpDisInt: "dis_int",
	OpIret:   "iret",
	OpPushRS: "push_rs",
	OpPopRS:  "pop_rs",
	OpRet:    "ret",
}

func (op Opcode) String() string {
	if m, ok := mnemonics[op]; ok {
		return m
	}
	return fmt.Sprintf("op(0x%02X)", uint8(op))
}

var jumpOpcodes = map[Opcode]bool{
	OpJmp: true, OpJcc: true, OpJcs: true, OpJeq: true, OpJne: true,
	OpJlt: true, OpJgt: true, OpJle: true, OpJge: true,
}

// IsJump reports whether op is one of the jump-family opcodes, which always
// carry a target address in a following immediate word.
func (op Opcode) IsJump() bool { return jumpOpcodes[op] }

type operandUsage struct{ rd, rs1, rs2 bool }

var usage = map[Opcode]operandUsage{
	OpMov:    {true, true, false},
	OpAdd:    {true, true, true},
	OpAdc:    {true, true, true},
	OpSub:    {true, true, true},
	OpMul:    {true, true, true},
	OpDiv:    {true, true, true},
	OpMod:    {true, true, true},
	OpAnd:    {true, true, true},
	OpOr:     {true, true, true},
	OpXor:    {true, true, true},
	OpCmp:    {false, true, true},
	OpNeg:    {true, true, false},
	OpNot:    {true, true, false},
	OpPopDS:  {true, false, false},
	OpPopRS:  {true, false, false},
	OpPushDS: {false, true, false},
	OpPushRS: {false, true, false},
}

// Usage reports which of rd/rs1/rs2 the opcode reads its operands from.
// Opcodes absent from the table (halt, nop, ret, the jump family, en_int,
// dis_int, iret, in, out) use none of them.
func (op Opcode) Usage() (usesRd, usesRs1, usesRs2 bool) {
	u := usage[op]
	return u.rd, u.rs1, u.rs2
}
