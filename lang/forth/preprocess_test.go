package forth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPreprocessInlinesRequire(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.fth")
	main := filepath.Join(dir, "main.fth")

	if err := os.WriteFile(lib, []byte("const one 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(main, []byte("#require \"lib.fth\"\none .\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := Preprocess(main)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	want := "const one 1\none .\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestPreprocessDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fth")
	b := filepath.Join(dir, "b.fth")

	if err := os.WriteFile(a, []byte("#require \"b.fth\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("#require \"a.fth\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Preprocess(a); err == nil {
		t.Fatal("expected cycle error")
	}
}

func TestPreprocessMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Preprocess(filepath.Join(dir, "nope.fth")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPreprocessMalformedDirective(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.fth")
	if err := os.WriteFile(main, []byte("#require\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Preprocess(main); err == nil {
		t.Fatal("expected error for malformed #require")
	}
}
