package isa

import "fmt"

// Register identifies one of the machine's 16 registers.
type Register uint8

const (
	EAX Register = iota
	EBX
	ECX
	EDX
	EFX
	R6
	R7
	R8
	R9
	R10
	PC
	AR
	DR
	SP
	RP
	IR
)

var registerNames = [...]string{
	"EAX", "EBX", "ECX", "EDX", "EFX",
	"r6", "r7", "r8", "r9", "r10",
	"PC", "AR", "DR", "SP", "RP", "IR",
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("r(%d)", uint8(r))
}

// AddrMode selects how an operand slot's register field is interpreted.
type AddrMode uint8

const (
	// ModeReg: the field names the register holding the value.
	ModeReg AddrMode = 0
	// ModeImm: the value lives in the following immediate word; the
	// register field is unused.
	ModeImm AddrMode = 1
	// ModeInd: the field names a register holding the address of the
	// value.
	ModeInd AddrMode = 2
	// ModeIndImm: as ModeInd, plus a displacement in the immediate word.
	ModeIndImm AddrMode = 3
)
