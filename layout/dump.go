package layout

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// DumpSymbols writes a plain-text symbol table listing to w: one line per
// symbol, in layout order (by phase, then declaration order within a phase),
// giving its kind, data-memory address, and size in words.
func DumpSymbols(w io.Writer, t *Table) error {
	for _, name := range t.names {
		s := t.syms[name]
		var extra string
		if s.Kind == KindConst {
			extra = fmt.Sprintf(" value=%d", s.Value)
		}
		if _, err := fmt.Fprintf(w, "%-6s %-16s addr=%-6d size=%d%s\n", s.Kind, s.Name, s.Addr, s.Size, extra); err != nil {
			return errors.Wrap(err, "dump symbols")
		}
	}
	return nil
}
