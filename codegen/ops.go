package codegen

import "github.com/mip3x/csa-lab-iv/isa"

// Small constructors for the Instruction shapes the generator emits
// repeatedly. Keeping them here, rather than inlining field literals at
// every call site, makes the lowering table in generator.go read close to
// the pseudo-assembly it implements.

func pushImm(v int32) isa.Instruction {
	return isa.Instruction{Op: isa.OpPushDS, Rs1Mode: isa.ModeImm, Imm: v, ImmSet: true}
}

func pushReg(r isa.Register) isa.Instruction {
	return isa.Instruction{Op: isa.OpPushDS, Rs1Mode: isa.ModeReg, Rs1: r}
}

func popReg(r isa.Register) isa.Instruction {
	return isa.Instruction{Op: isa.OpPopDS, RdMode: isa.ModeReg, Rd: r}
}

func pushRS(r isa.Register) isa.Instruction {
	return isa.Instruction{Op: isa.OpPushRS, Rs1Mode: isa.ModeReg, Rs1: r}
}

func pushRSImm(v int32) isa.Instruction {
	return isa.Instruction{Op: isa.OpPushRS, Rs1Mode: isa.ModeImm, Imm: v, ImmSet: true}
}

func popRS(r isa.Register) isa.Instruction {
	return isa.Instruction{Op: isa.OpPopRS, RdMode: isa.ModeReg, Rd: r}
}

func movImm(dst isa.Register, v int32) isa.Instruction {
	return isa.Instruction{Op: isa.OpMov, RdMode: isa.ModeReg, Rd: dst, Rs1Mode: isa.ModeImm, Imm: v, ImmSet: true}
}

func binop(op isa.Opcode, rd, rs1, rs2 isa.Register) isa.Instruction {
	return isa.Instruction{Op: op, RdMode: isa.ModeReg, Rs1Mode: isa.ModeReg, Rs2Mode: isa.ModeReg, Rd: rd, Rs1: rs1, Rs2: rs2}
}

func unop(op isa.Opcode, rd, rs1 isa.Register) isa.Instruction {
	return isa.Instruction{Op: op, RdMode: isa.ModeReg, Rs1Mode: isa.ModeReg, Rd: rd, Rs1: rs1}
}

func subImm(rd, rs1 isa.Register, v int32) isa.Instruction {
	return isa.Instruction{Op: isa.OpSub, RdMode: isa.ModeReg, Rs1Mode: isa.ModeReg, Rs2Mode: isa.ModeImm, Rd: rd, Rs1: rs1, Imm: v, ImmSet: true}
}

func cmpRegReg(rs1, rs2 isa.Register) isa.Instruction {
	return isa.Instruction{Op: isa.OpCmp, Rs1Mode: isa.ModeReg, Rs2Mode: isa.ModeReg, Rs1: rs1, Rs2: rs2}
}

func cmpRegImm(rs1 isa.Register, v int32) isa.Instruction {
	return isa.Instruction{Op: isa.OpCmp, Rs1Mode: isa.ModeReg, Rs2Mode: isa.ModeImm, Rs1: rs1, Imm: v, ImmSet: true}
}

func fetchInd(dst, srcAddr isa.Register) isa.Instruction {
	return isa.Instruction{Op: isa.OpMov, RdMode: isa.ModeReg, Rd: dst, Rs1Mode: isa.ModeInd, Rs1: srcAddr}
}

func storeInd(dstAddr, src isa.Register) isa.Instruction {
	return isa.Instruction{Op: isa.OpMov, RdMode: isa.ModeInd, Rd: dstAddr, Rs1Mode: isa.ModeReg, Rs1: src}
}

func ioOut(port uint16) isa.Instruction {
	return isa.Instruction{Op: isa.OpOut, Port: port}
}

func ioIn(port uint16) isa.Instruction {
	return isa.Instruction{Op: isa.OpIn, Port: port}
}
