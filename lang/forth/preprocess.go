package forth

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// requireDirective introduces a file inclusion line: a line whose trimmed
// form begins with "#require" names another source file to inline in its
// place, resolved relative to the including file's directory.
const requireDirective = "#require"

// Preprocess reads path and recursively inlines every #require directive it
// contains, returning the fully expanded source text. Including a path that
// was already included earlier in the same run, whether or not it is still
// on the current include chain, is a fatal cycle error reporting the
// current chain; a missing file is fatal.
func Preprocess(path string) (string, error) {
	p := &preprocessor{included: make(map[string]bool)}
	var buf strings.Builder
	if err := p.include(path, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type preprocessor struct {
	included map[string]bool
	chain    []string
}

func (p *preprocessor) include(path string, buf *strings.Builder) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve path %q", path)
	}

	if p.included[abs] {
		chain := append(append([]string{}, p.chain...), abs)
		return errors.Errorf("cyclic #require: %s", strings.Join(chain, " -> "))
	}

	f, err := os.Open(abs)
	if err != nil {
		return errors.Wrapf(err, "#require %q", path)
	}
	defer f.Close()

	p.included[abs] = true
	p.chain = append(p.chain, abs)
	defer func() { p.chain = p.chain[:len(p.chain)-1] }()

	dir := filepath.Dir(abs)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, requireDirective) {
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, requireDirective))
			rest = strings.Trim(rest, "<>\"")
			if rest == "" {
				return errors.Errorf("%s: malformed #require directive", abs)
			}
			if err := p.include(filepath.Join(dir, rest), buf); err != nil {
				return err
			}
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return errors.Wrap(sc.Err(), "read "+abs)
}
