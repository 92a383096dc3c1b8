// Command translator ahead-of-time compiles a Forth-flavoured stack
// program into a binary instruction image, a binary data image, and a
// disassembly listing.
//
// Usage:
//
//	translator <input_source> <output_instructions> <output_data>
//
// The disassembly listing is written alongside the instruction image, at
// <output_instructions>.hex.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mip3x/csa-lab-iv/compiler"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: translator <input_source> <output_instructions> <output_data>")
}

func run(sourcePath, instrPath, dataPath string) error {
	artifacts, err := compiler.Compile(sourcePath)
	if err != nil {
		return err
	}
	return compiler.Write(artifacts, instrPath, dataPath)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		os.Exit(2)
	}

	args := flag.Args()
	if err := run(args[0], args[1], args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "translator: %+v\n", err)
		os.Exit(1)
	}
}
