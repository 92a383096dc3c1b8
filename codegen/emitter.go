package codegen

import (
	"github.com/pkg/errors"

	"github.com/mip3x/csa-lab-iv/isa"
)

type patchSite struct {
	index int
	label string
}

// Emitter accumulates an instruction stream along with label definitions
// and a queue of forward jump references, so that a label may be used in a
// jump before it is defined. It is a plain value, not a package-level
// singleton: each Generate call constructs its own, so repeated compiles in
// one process never share state.
type Emitter struct {
	Code    []isa.Instruction
	PCWords int

	labels  map[string]int
	patches []patchSite
}

// NewEmitter returns an Emitter ready to accept instructions.
func NewEmitter() *Emitter {
	return &Emitter{labels: make(map[string]int)}
}

// Mark records label as naming the current word address.
func (e *Emitter) Mark(label string) {
	e.labels[label] = e.PCWords
}

// Emit appends in to the instruction stream, advancing the program counter
// by its encoded length.
func (e *Emitter) Emit(in isa.Instruction) {
	e.Code = append(e.Code, in)
	e.PCWords += in.Len()
}

// EmitJumpToLabel emits a placeholder jump-family instruction targeting
// label, to be resolved by PatchAll once every label has been marked.
func (e *Emitter) EmitJumpToLabel(label string, op isa.Opcode) {
	idx := len(e.Code)
	in := isa.Instruction{Op: op, ImmSet: true}
	e.Code = append(e.Code, in)
	e.patches = append(e.patches, patchSite{index: idx, label: label})
	e.PCWords += in.Len()
}

// PatchAll resolves every pending forward reference against the labels
// marked so far. An undefined label is fatal.
func (e *Emitter) PatchAll() error {
	for _, p := range e.patches {
		addr, ok := e.labels[p.label]
		if !ok {
			return errors.Errorf("undefined label: %s", p.label)
		}
		e.Code[p.index].Imm = int32(addr)
	}
	return nil
}
