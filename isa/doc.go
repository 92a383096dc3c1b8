// Package isa describes the target machine's instruction set: opcodes,
// registers, addressing modes, the variable-length word encoding, and the
// disassembly listing format.
//
// A machine word is 32 bits, laid out as:
//
//	bits 31..24  reserved, always zero
//	bits 23..20  rs2
//	bits 19..16  rs1
//	bits 15..12  rd
//	bits 11..6   addr_t (bits 0-1 rd's mode, 2-3 rs1's, 4-5 rs2's)
//	bits  5..0   opcode
//
// Four addressing modes apply to each operand slot: REG (the field names
// a register), IMM (the field is unused, the value lives in the immediate
// word that follows), IND (the field names a register holding an address),
// and IND+IMM (as IND, plus a displacement in the immediate word).
//
// in and out are the exception: they are always a single word, with the
// 10-bit port number packed into bits 15..6 and no addressing-mode field.
//
// Every other instruction occupies a second, immediate word whenever any
// operand slot uses IMM or IND+IMM addressing, or the opcode is one of the
// jump family (which always carries a target address).
package isa
