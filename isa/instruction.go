package isa

import (
	"fmt"
	"strings"
)

// Instruction is the in-memory representation of one machine instruction,
// before or after encoding. Fields not used by Op are left at their zero
// value; Encode packs every register and mode field as given, and the
// disassembly listing prints only the operands Op uses.
type Instruction struct {
	Op Opcode

	Rd, Rs1, Rs2             Register
	RdMode, Rs1Mode, Rs2Mode AddrMode

	// Imm holds the instruction's immediate word, meaningful only when
	// ImmSet is true.
	Imm    int32
	ImmSet bool

	// Port holds the 10-bit port operand of in/out.
	Port uint16
}

// Len reports how many 32-bit words the instruction occupies once encoded:
// 1 for in/out, 2 for any jump, 2 if any operand slot uses IMM or IND+IMM
// addressing, 1 otherwise.
func (in Instruction) Len() int {
	if in.Op == OpIn || in.Op == OpOut {
		return 1
	}
	if in.Op.IsJump() {
		return 2
	}
	if needsImmWord(in.RdMode) || needsImmWord(in.Rs1Mode) || needsImmWord(in.Rs2Mode) {
		return 2
	}
	return 1
}

func needsImmWord(m AddrMode) bool { return m == ModeImm || m == ModeIndImm }

// disasm renders the instruction's mnemonic and operand list (not its
// address or hex dump); imm is the instruction's own immediate word value,
// already resolved by the caller.
func (in Instruction) disasm(imm int32) string {
	if in.Op == OpIn || in.Op == OpOut {
		return fmt.Sprintf("%s port=%d", in.Op, in.Port)
	}

	usesRd, usesRs1, usesRs2 := in.Op.Usage()
	var operands []string
	if usesRd {
		operands = append(operands, formatOperand(in.RdMode, in.Rd, imm))
	}
	if usesRs1 {
		operands = append(operands, formatOperand(in.Rs1Mode, in.Rs1, imm))
	}
	if usesRs2 {
		operands = append(operands, formatOperand(in.Rs2Mode, in.Rs2, imm))
	}

	if len(operands) == 0 {
		return in.Op.String()
	}
	return in.Op.String() + " " + strings.Join(operands, ", ")
}

func formatOperand(mode AddrMode, reg Register, imm int32) string {
	switch mode {
	case ModeImm:
		return fmt.Sprintf("#%d", imm)
	case ModeInd:
		return fmt.Sprintf("[%s]", reg)
	case ModeIndImm:
		return fmt.Sprintf("[%s+%d]", reg, imm)
	default:
		return reg.String()
	}
}
