package isa

import "github.com/pkg/errors"

// Decode decodes the instruction starting at words[i], consuming its
// immediate word (if any) as well, and returns the index of the next
// instruction.
func Decode(words []uint32, i int) (Instruction, int, error) {
	if i >= len(words) {
		return Instruction{}, i, errors.Errorf("decode at %d: out of range", i)
	}
	w := words[i]
	op := Opcode(w & 0x3F)

	if op == OpIn || op == OpOut {
		return Instruction{Op: op, Port: uint16((w >> 6) & 0x3FF)}, i + 1, nil
	}

	addrT := (w >> 6) & 0x3F
	in := Instruction{
		Op:      op,
		RdMode:  AddrMode(addrT & 0x3),
		Rs1Mode: AddrMode((addrT >> 2) & 0x3),
		Rs2Mode: AddrMode((addrT >> 4) & 0x3),
		Rd:      Register((w >> 12) & 0xF),
		Rs1:     Register((w >> 16) & 0xF),
		Rs2:     Register((w >> 20) & 0xF),
	}

	if in.Len() == 2 {
		if i+1 >= len(words) {
			return Instruction{}, i, errors.Errorf("decode at %d: missing immediate word", i)
		}
		in.Imm = int32(words[i+1])
		in.ImmSet = true
		return in, i + 2, nil
	}
	return in, i + 1, nil
}
