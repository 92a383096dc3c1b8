package forth

import "testing"

func TestTokenizeKinds(t *testing.T) {
	toks, err := Tokenize("test", `42 0x2A foo + ." hi" "bye" ( comment ) \ trailer
`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []struct {
		kind Kind
		text string
	}{
		{Number, "42"},
		{Number, "0x2A"},
		{Word, "foo"},
		{Sym, "+"},
		{Sym, printStringMarker},
		{String, "hi"},
		{String, "bye"},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d = %+v, want {%v %q}", i, toks[i], w.kind, w.text)
		}
	}
}

func TestTokenizeNumberValues(t *testing.T) {
	toks, err := Tokenize("test", "42 0x2A")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Value != 42 {
		t.Errorf("toks[0].Value = %d, want 42", toks[0].Value)
	}
	if toks[1].Value != 42 {
		t.Errorf("toks[1].Value = %d, want 42 (0x2A)", toks[1].Value)
	}
}

func TestTokenizeUnterminatedComment(t *testing.T) {
	if _, err := Tokenize("test", "1 ( unterminated"); err == nil {
		t.Fatal("expected an error for unterminated comment")
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	if _, err := Tokenize("test", `"unterminated`); err == nil {
		t.Fatal("expected an error for unterminated string")
	}
}

func TestTokenizeEmptyHex(t *testing.T) {
	if _, err := Tokenize("test", "0x"); err == nil {
		t.Fatal("expected an error for empty hex literal")
	}
}

func TestTokenizeIdentWithUnderscore(t *testing.T) {
	toks, err := Tokenize("test", "_enable_int_")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != Word || toks[0].Text != "_enable_int_" {
		t.Fatalf("got %+v", toks)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	toks, err := Tokenize("test", "   \n\t  ")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 0 {
		t.Fatalf("got %d tokens, want 0", len(toks))
	}
}
