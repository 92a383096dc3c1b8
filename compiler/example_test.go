package compiler_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mip3x/csa-lab-iv/compiler"
)

// Shows the full pipeline end to end: a tiny program that pushes a literal
// and prints it, compiled down to its disassembly listing.
func ExampleCompile() {
	dir, err := os.MkdirTemp("", "translator-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "prog.fth")
	if err := os.WriteFile(src, []byte("1 .\n"), 0o644); err != nil {
		fmt.Println(err)
		return
	}

	artifacts, err := compiler.Compile(src)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(strings.Join(artifacts.Listing, "\n"))

	// Output:
	// 0 - 0000000F - jmp
	// 1 - 00000002 - imm=2
	// 2 - 00000101 - push_ds #1
	// 3 - 00000001 - imm=1
	// 4 - 0000C002 - pop_ds DR
	// 5 - 0000009A - out port=2
	// 6 - 00000000 - halt
}
