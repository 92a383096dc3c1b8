package isa

import "github.com/pkg/errors"

// EncodeWords encodes a sequence of instructions into its flat word stream.
// Encoding fails if an instruction that requires a second word was built
// without one (ImmSet false).
func EncodeWords(instrs []Instruction) ([]uint32, error) {
	words := make([]uint32, 0, len(instrs))
	for idx, in := range instrs {
		w, imm, hasImm, err := in.encodeWords()
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", idx)
		}
		words = append(words, w)
		if hasImm {
			words = append(words, imm)
		}
	}
	return words, nil
}

// Encode encodes instrs into big-endian bytes.
func Encode(instrs []Instruction) ([]byte, error) {
	words, err := EncodeWords(instrs)
	if err != nil {
		return nil, err
	}
	return WordsToBytes(words), nil
}

// WordsToBytes packs words into big-endian bytes, 4 bytes per word.
func WordsToBytes(words []uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		b[4*i] = byte(w >> 24)
		b[4*i+1] = byte(w >> 16)
		b[4*i+2] = byte(w >> 8)
		b[4*i+3] = byte(w)
	}
	return b
}

// BytesToWords unpacks big-endian bytes into words; a trailing partial word
// is silently dropped.
func BytesToWords(b []byte) []uint32 {
	n := len(b) / 4
	words := make([]uint32, n)
	for i := 0; i < n; i++ {
		words[i] = uint32(b[4*i])<<24 | uint32(b[4*i+1])<<16 | uint32(b[4*i+2])<<8 | uint32(b[4*i+3])
	}
	return words
}

func (in Instruction) encodeWords() (word uint32, imm uint32, hasImm bool, err error) {
	if in.Op == OpIn || in.Op == OpOut {
		word = (uint32(in.Port)&0x3FF)<<6 | uint32(in.Op)&0x3F
		return word, 0, false, nil
	}

	addrT := uint32(in.RdMode)&0x3 | (uint32(in.Rs1Mode)&0x3)<<2 | (uint32(in.Rs2Mode)&0x3)<<4
	word = uint32(in.Op)&0x3F |
		(addrT&0x3F)<<6 |
		(uint32(in.Rd)&0xF)<<12 |
		(uint32(in.Rs1)&0xF)<<16 |
		(uint32(in.Rs2)&0xF)<<20

	if in.Len() == 2 {
		if !in.ImmSet {
			return 0, 0, false, errors.Errorf("missing immediate for opcode %s", in.Op)
		}
		return word, uint32(in.Imm), true, nil
	}
	return word, 0, false, nil
}
