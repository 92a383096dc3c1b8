package compiler

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/mip3x/csa-lab-iv/codegen"
	"github.com/mip3x/csa-lab-iv/internal/objio"
	"github.com/mip3x/csa-lab-iv/isa"
	"github.com/mip3x/csa-lab-iv/lang/forth"
)

// Artifacts is the fully resolved, in-memory result of compiling a source
// file: the instruction stream, the data-memory image, and the disassembly
// listing derived from them.
type Artifacts struct {
	Instructions []isa.Instruction
	Data         []int32
	Listing      []string
}

// Compile runs the full translator pipeline against the source file at
// sourcePath: preprocess, tokenize, parse, generate, encode, disassemble.
func Compile(sourcePath string) (*Artifacts, error) {
	src, err := forth.Preprocess(sourcePath)
	if err != nil {
		return nil, errors.Wrap(err, "preprocess")
	}

	toks, err := forth.Tokenize(sourcePath, src)
	if err != nil {
		return nil, errors.Wrap(err, "tokenize")
	}

	prog, err := forth.Parse(sourcePath, toks)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	instrs, data, err := codegen.Generate(prog)
	if err != nil {
		return nil, errors.Wrap(err, "codegen")
	}

	words, err := isa.EncodeWords(instrs)
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}

	return &Artifacts{
		Instructions: instrs,
		Data:         data,
		Listing:      isa.DisassembleAll(words),
	}, nil
}

// Write persists a's instruction image to instrPath, its data image to
// dataPath, and its disassembly listing to instrPath + ".hex".
func Write(a *Artifacts, instrPath, dataPath string) error {
	words, err := isa.EncodeWords(a.Instructions)
	if err != nil {
		return errors.Wrap(err, "encode")
	}
	if err := writeWords(instrPath, words); err != nil {
		return errors.Wrap(err, "write instruction image")
	}

	dataWords := make([]uint32, len(a.Data))
	for i, v := range a.Data {
		dataWords[i] = uint32(v)
	}
	if err := writeWords(dataPath, dataWords); err != nil {
		return errors.Wrap(err, "write data image")
	}

	listingPath := instrPath + ".hex"
	content := strings.Join(a.Listing, "\n")
	if len(a.Listing) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(listingPath, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, "write listing")
	}
	return nil
}

func writeWords(path string, words []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ew := objio.NewErrWriter(f)
	for _, w := range words {
		ew.WriteWord(w)
	}
	return ew.Err
}
