package textutil

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple words",
			input: "Hello World",
			want:  []string{"hello", "world"},
		},
		{
			name:  "keeps short tokens",
			input: "a to the quick fox",
			want:  []string{"a", "to", "the", "quick", "fox"},
		},
		{
			name:  "handles punctuation",
			input: "Hello, World! How are you?",
			want:  []string{"hello", "world", "how", "are", "you"},
		},
		{
			name:  "handles numbers",
			input: "test123 456test 2007",
			want:  []string{"test123", "456test", "2007"},
		},
		{
			name:  "apostrophes and hyphens split",
			input: "don't self-contained",
			want:  []string{"don", "t", "self", "contained"},
		},
		{
			name:  "underscore is a separator",
			input: "snake_case",
			want:  []string{"snake", "case"},
		},
		{
			name:  "duplicates kept in order",
			input: "the cat the",
			want:  []string{"the", "cat", "the"},
		},
		{
			name:  "embedded newline separates",
			input: "line\nbreak",
			want:  []string{"line", "break"},
		},
		{
			name:  "non-ascii bytes separate",
			input: "café naïve",
			want:  []string{"caf", "na", "ve"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "only separators",
			input: " \t.,;!? ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeUnicodePolicy(t *testing.T) {
	tok := NewTokenizer(PolicyUnicode)
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"accented letters", "Café NAÏVE", []string{"café", "naïve"}},
		{"non-latin script", "Привет, МИР", []string{"привет", "мир"}},
		{"digits in other scripts", "x٣y", []string{"x٣y"}},
		{"dotted capital i stays alphanumeric", "İstanbul", []string{"istanbul"}},
		{"invalid utf8 separates", "ab\xffcd", []string{"ab", "cd"}},
		{"punctuation", "hello—world", []string{"hello", "world"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeLinesIsLineBounded(t *testing.T) {
	tok := NewTokenizer(PolicyASCII)

	whole := tok.TokenizeLines([]string{"the cat sat on the mat"})
	split := tok.TokenizeLines([]string{"the cat ", "sat on", " the mat"})
	if !reflect.DeepEqual(whole, split) {
		t.Fatalf("splits at separators changed tokens: %q vs %q", whole, split)
	}

	inside := tok.TokenizeLines([]string{"the ca", "t sat"})
	want := []string{"the", "ca", "t", "sat"}
	if !reflect.DeepEqual(inside, want) {
		t.Fatalf("split inside a word = %q, want %q", inside, want)
	}
}

func TestTokenizeLineSplitMultiset(t *testing.T) {
	text := "It was the best of times, it was the worst of times; it was the age of wisdom."
	tok := NewTokenizer(PolicyASCII)
	reference := tok.Tokenize(text)

	for cut := 0; cut <= len(text); cut++ {
		got := tok.TokenizeLines([]string{text[:cut], text[cut:]})
		insideWord := cut > 0 && cut < len(text) && IsWordByte(text[cut-1]) && IsWordByte(text[cut])
		if !insideWord {
			if !sameMultiset(got, reference) {
				t.Fatalf("cut %d: tokens %q differ from %q", cut, got, reference)
			}
			continue
		}
		if len(got) != len(reference)+1 {
			t.Fatalf("cut %d inside a word: got %d tokens, want %d", cut, len(got), len(reference)+1)
		}
	}
}

func TestTokenizeUnicodeLines(t *testing.T) {
	tok := NewTokenizer(PolicyUnicode)
	got := tok.TokenizeLines([]string{"Äpfel und", "BIRNEN"})
	want := []string{"äpfel", "und", "birnen"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TokenizeLines = %q, want %q", got, want)
	}
}

func TestTokensAreLowerAlphanumeric(t *testing.T) {
	input := "Mixed CASE, digits 42 and Symbols #$%^&*() with\ttabs"
	for _, tok := range Tokenize(input) {
		if tok == "" {
			t.Fatal("empty token emitted")
		}
		if tok != strings.ToLower(tok) {
			t.Fatalf("token %q is not lower-cased", tok)
		}
		for i := 0; i < len(tok); i++ {
			if !IsWordByte(tok[i]) {
				t.Fatalf("token %q contains separator byte %q", tok, tok[i])
			}
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"", PolicyASCII, false},
		{"ascii", PolicyASCII, false},
		{" Unicode ", PolicyUnicode, false},
		{"latin1", PolicyASCII, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParsePolicy(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	if PolicyUnicode.String() != "unicode" || PolicyASCII.String() != "ascii" {
		t.Fatal("unexpected policy names")
	}
}

func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	return reflect.DeepEqual(x, y)
}
