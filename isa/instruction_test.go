package isa

import "testing"

func TestInstructionLenRules(t *testing.T) {
	cases := []struct {
		name string
		in   Instruction
		want int
	}{
		{"halt", Instruction{Op: OpHalt}, 1},
		{"reg-only add", Instruction{Op: OpAdd, Rd: EAX, Rs1: EBX, Rs2: ECX}, 1},
		{"imm operand", Instruction{Op: OpPushDS, Rs1Mode: ModeImm, ImmSet: true}, 2},
		{"indirect+imm operand", Instruction{Op: OpPopDS, RdMode: ModeIndImm, ImmSet: true}, 2},
		{"indirect operand (no imm)", Instruction{Op: OpPopDS, RdMode: ModeInd}, 1},
		{"jump always two words", Instruction{Op: OpJmp, ImmSet: true}, 2},
		{"in is one word", Instruction{Op: OpIn, Port: 1}, 1},
		{"out is one word", Instruction{Op: OpOut, Port: 2}, 1},
	}
	for _, c := range cases {
		if got := c.in.Len(); got != c.want {
			t.Errorf("%s: Len() = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestOpcodeStringKnownAndUnknown(t *testing.T) {
	if s := OpAdd.String(); s != "add" {
		t.Errorf("OpAdd.String() = %q, want add", s)
	}
	if s := Opcode(0xFF).String(); s == "" {
		t.Errorf("unknown opcode String() returned empty")
	}
}

func TestOpcodeIsJump(t *testing.T) {
	if !OpJeq.IsJump() {
		t.Error("OpJeq should be a jump opcode")
	}
	if OpAdd.IsJump() {
		t.Error("OpAdd should not be a jump opcode")
	}
}

func TestOpcodeUsage(t *testing.T) {
	rd, rs1, rs2 := OpAdd.Usage()
	if !rd || !rs1 || !rs2 {
		t.Errorf("OpAdd.Usage() = %v %v %v, want all true", rd, rs1, rs2)
	}
	rd, rs1, rs2 = OpCmp.Usage()
	if rd || !rs1 || !rs2 {
		t.Errorf("OpCmp.Usage() = %v %v %v, want false true true", rd, rs1, rs2)
	}
	rd, rs1, rs2 = OpHalt.Usage()
	if rd || rs1 || rs2 {
		t.Errorf("OpHalt.Usage() = %v %v %v, want all false", rd, rs1, rs2)
	}
}

func TestRegisterString(t *testing.T) {
	if s := EAX.String(); s != "EAX" {
		t.Errorf("EAX.String() = %q, want EAX", s)
	}
	if s := IR.String(); s != "IR" {
		t.Errorf("IR.String() = %q, want IR", s)
	}
	if s := Register(255).String(); s == "" {
		t.Errorf("unknown register String() returned empty")
	}
}
