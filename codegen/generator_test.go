package codegen

import (
	"testing"

	"github.com/mip3x/csa-lab-iv/isa"
	"github.com/mip3x/csa-lab-iv/lang/forth"
)

func genProg(t *testing.T, src string) ([]isa.Instruction, []int32) {
	t.Helper()
	toks, err := forth.Tokenize("test", src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	prog, err := forth.Parse("test", toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	instrs, data, err := Generate(prog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return instrs, data
}

func opSeq(instrs []isa.Instruction) []isa.Opcode {
	ops := make([]isa.Opcode, len(instrs))
	for i, in := range instrs {
		ops[i] = in.Op
	}
	return ops
}

func TestGenerateEmptyProgramHasEntryJumpAndHalt(t *testing.T) {
	instrs, _ := genProg(t, "")
	if instrs[0].Op != isa.OpJmp {
		t.Fatalf("first instruction = %v, want jmp", instrs[0].Op)
	}
	if instrs[len(instrs)-1].Op != isa.OpHalt {
		t.Fatalf("last instruction = %v, want halt", instrs[len(instrs)-1].Op)
	}
}

func TestGenerateConstPushPrint(t *testing.T) {
	instrs, _ := genProg(t, "const n 65 n .")
	ops := opSeq(instrs)
	// entry jmp(2) ... push_ds #65(2), pop_ds DR(1), out(1), halt(1)
	foundPush, foundOut := false, false
	for i, op := range ops {
		if op == isa.OpPushDS && instrs[i].Imm == 65 {
			foundPush = true
		}
		if op == isa.OpOut {
			foundOut = true
		}
	}
	if !foundPush {
		t.Fatal("expected a push_ds #65")
	}
	if !foundOut {
		t.Fatal("expected an out instruction for '.'")
	}
}

func TestGenerateIfElseBothBranchesLowered(t *testing.T) {
	instrs, _ := genProg(t, "1 if 2 else 3 then")
	foundJeq, jmps := false, 0
	for _, op := range opSeq(instrs) {
		if op == isa.OpJeq {
			foundJeq = true
		}
		if op == isa.OpJmp {
			jmps++
		}
	}
	if !foundJeq {
		t.Fatal("expected a conditional jump for if/else")
	}
	// One jmp is the entry jump; the other skips the else branch.
	if jmps < 2 {
		t.Fatal("expected an unconditional jump past the else branch")
	}
}

func TestGenerateTimesLoopUsesReturnStack(t *testing.T) {
	instrs, _ := genProg(t, "3 times 1 . next")
	hasPushRS, hasPopRS, hasJgt := false, false, false
	for _, op := range opSeq(instrs) {
		switch op {
		case isa.OpPushRS:
			hasPushRS = true
		case isa.OpPopRS:
			hasPopRS = true
		case isa.OpJgt:
			hasJgt = true
		}
	}
	if !hasPushRS || !hasPopRS || !hasJgt {
		t.Fatalf("times loop missing expected opcodes: pushRS=%v popRS=%v jgt=%v", hasPushRS, hasPopRS, hasJgt)
	}
}

func TestGenerateStringDeclarationAndFetch(t *testing.T) {
	instrs, data := genProg(t, `str greet "hi" greet @`)
	if len(data) != 3 {
		t.Fatalf("data = %v, want 3 words (len+2 chars)", data)
	}
	hasFetch := false
	for _, in := range instrs {
		if in.Op == isa.OpMov && in.Rs1Mode == isa.ModeInd {
			hasFetch = true
		}
	}
	if !hasFetch {
		t.Fatal("expected an indirect mov for '@'")
	}
}

func TestGenerateVectorWithConstPort(t *testing.T) {
	instrs, _ := genProg(t, "const kbd 1 vector kbd : on_key : on_key 0 . ; : main ;")
	// The vector table entry should be a jump to on_key, placed at word
	// vectorBase+1 (vectorBase itself is reserved by the entry jump).
	word := 0
	var vec *isa.Instruction
	for i := range instrs {
		if word == vectorBase+1 {
			vec = &instrs[i]
			break
		}
		word += instrs[i].Len()
	}
	if vec == nil || vec.Op != isa.OpJmp {
		t.Fatalf("expected a vector jump at word %d", vectorBase+1)
	}
	// on_key is the first definition, emitted right after the 2-word vector jump.
	if want := int32(vectorBase + 1 + 2); vec.Imm != want {
		t.Fatalf("vector jump target = %d, want %d (on_key)", vec.Imm, want)
	}
}

func TestGeneratePrintStringMarker(t *testing.T) {
	instrs, _ := genProg(t, `." hi"`)
	count := 0
	for _, in := range instrs {
		if in.Op == isa.OpOut {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 out instructions for a 2-char string, got %d", count)
	}
}

func TestGenerateDuplicateDefinitionFails(t *testing.T) {
	toks, err := forth.Tokenize("test", ": f 1 ; : f 2 ;")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	prog, err := forth.Parse("test", toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, _, err := Generate(prog); err == nil {
		t.Fatal("expected error for duplicate definition")
	}
}

func TestGenerateUnknownWordFails(t *testing.T) {
	toks, err := forth.Tokenize("test", "frobnicate")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	prog, err := forth.Parse("test", toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, _, err := Generate(prog); err == nil {
		t.Fatal("expected error for unknown word")
	}
}

func TestGenerateProcedureCall(t *testing.T) {
	instrs, _ := genProg(t, ": square dup * ; 4 square")
	hasCall := false
	for _, in := range instrs {
		if in.Op == isa.OpPushRS && in.Rs1Mode == isa.ModeImm {
			hasCall = true
		}
	}
	if !hasCall {
		t.Fatal("expected a push_rs #return-address for the call to square")
	}
}
