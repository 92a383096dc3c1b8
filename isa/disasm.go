package isa

import "fmt"

// DisassembleAll renders words as a disassembly listing, one line per
// memory word: an instruction's opcode word gets a mnemonic line, and if it
// has an immediate word, that word gets its own "imm=" line immediately
// after. This keeps each line's word index equal to its byte offset / 4.
func DisassembleAll(words []uint32) []string {
	lines := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		in, next, err := Decode(words, i)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%d - %08X - ???", i, words[i]))
			i++
			continue
		}

		lines = append(lines, fmt.Sprintf("%d - %08X - %s", i, words[i], in.disasm(in.Imm)))
		i++
		if in.ImmSet {
			lines = append(lines, fmt.Sprintf("%d - %08X - imm=%d", i, uint32(in.Imm), in.Imm))
			i++
		}
		_ = next
	}
	return lines
}
