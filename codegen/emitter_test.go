package codegen

import (
	"testing"

	"github.com/mip3x/csa-lab-iv/isa"
)

func TestEmitterMarkAndPatchForwardReference(t *testing.T) {
	e := NewEmitter()
	e.EmitJumpToLabel("target", isa.OpJmp)
	e.Emit(isa.Instruction{Op: isa.OpNop})
	e.Mark("target")
	e.Emit(isa.Instruction{Op: isa.OpHalt})

	if err := e.PatchAll(); err != nil {
		t.Fatalf("PatchAll: %v", err)
	}
	// jmp occupies words 0-1, nop occupies word 2, so "target" is word 3.
	if e.Code[0].Imm != 3 {
		t.Fatalf("patched jump target = %d, want 3", e.Code[0].Imm)
	}
}

func TestEmitterUndefinedLabelFails(t *testing.T) {
	e := NewEmitter()
	e.EmitJumpToLabel("nowhere", isa.OpJmp)
	if err := e.PatchAll(); err == nil {
		t.Fatal("expected error for undefined label")
	}
}

func TestEmitterPCWordsTracksInstructionLength(t *testing.T) {
	e := NewEmitter()
	e.Emit(isa.Instruction{Op: isa.OpHalt})
	if e.PCWords != 1 {
		t.Fatalf("PCWords = %d, want 1", e.PCWords)
	}
	e.Emit(isa.Instruction{Op: isa.OpPushDS, Rs1Mode: isa.ModeImm, ImmSet: true})
	if e.PCWords != 3 {
		t.Fatalf("PCWords = %d, want 3", e.PCWords)
	}
}
