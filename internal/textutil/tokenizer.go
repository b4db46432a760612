package textutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy selects which characters count as word characters.
type Policy int

const (
	// PolicyASCII treats only ASCII letters and digits as word characters.
	PolicyASCII Policy = iota
	// PolicyUnicode treats any Unicode letter or digit as a word character.
	PolicyUnicode
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyASCII:
		return "ascii"
	case PolicyUnicode:
		return "unicode"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps a configuration value to a Policy. Empty input selects PolicyASCII.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ascii":
		return PolicyASCII, nil
	case "unicode":
		return PolicyUnicode, nil
	default:
		return PolicyASCII, fmt.Errorf("token policy: unsupported value %q", value)
	}
}

// Tokenizer turns lines of text into word tokens under a fixed character policy.
type Tokenizer struct {
	policy Policy
}

// NewTokenizer returns a tokenizer using the given policy.
func NewTokenizer(policy Policy) Tokenizer {
	return Tokenizer{policy: policy}
}

// Policy reports the character policy in effect.
func (t Tokenizer) Policy() Policy {
	return t.policy
}

// Tokenize returns the tokens of a single line in input order.
// Newlines inside line are separators like any other non-word character.
func (t Tokenizer) Tokenize(line string) []string {
	if t.policy == PolicyUnicode {
		return tokenizeUnicode(line, cases.Lower(language.Und), nil)
	}
	return tokenizeASCII(line, nil)
}

// TokenizeLines tokenizes each line independently and concatenates the results.
func (t Tokenizer) TokenizeLines(lines []string) []string {
	var tokens []string
	if t.policy == PolicyUnicode {
		// cases.Caser carries state between calls; one per document keeps
		// concurrent documents independent.
		caser := cases.Lower(language.Und)
		for _, line := range lines {
			tokens = tokenizeUnicode(line, caser, tokens)
		}
		return tokens
	}
	for _, line := range lines {
		tokens = tokenizeASCII(line, tokens)
	}
	return tokens
}

// Tokenize splits a line using PolicyASCII.
func Tokenize(line string) []string {
	return tokenizeASCII(line, nil)
}

// IsWordByte reports whether b is an ASCII letter or digit.
func IsWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// IsWordRune reports whether r is a Unicode letter or digit.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func tokenizeASCII(line string, dst []string) []string {
	start := -1
	for i := 0; i < len(line); i++ {
		if IsWordByte(line[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			dst = append(dst, lowerASCII(line[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		dst = append(dst, lowerASCII(line[start:]))
	}
	return dst
}

func lowerASCII(word string) string {
	hasUpper := false
	for i := 0; i < len(word); i++ {
		if word[i] >= 'A' && word[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return word
	}
	buf := []byte(word)
	for i, b := range buf {
		if b >= 'A' && b <= 'Z' {
			buf[i] = b + ('a' - 'A')
		}
	}
	return string(buf)
}

func tokenizeUnicode(line string, caser cases.Caser, dst []string) []string {
	start := -1
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		word := IsWordRune(r) && !(r == utf8.RuneError && size == 1)
		if word {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			dst = appendFolded(dst, caser, line[start:i])
			start = -1
		}
		i += size
	}
	if start >= 0 {
		dst = appendFolded(dst, caser, line[start:])
	}
	return dst
}

// appendFolded lower-cases word and drops any non-word runes the case mapping
// introduces (e.g. the combining dot produced by lower-casing U+0130).
func appendFolded(dst []string, caser cases.Caser, word string) []string {
	folded := caser.String(word)
	if strings.IndexFunc(folded, func(r rune) bool { return !IsWordRune(r) }) >= 0 {
		folded = strings.Map(func(r rune) rune {
			if IsWordRune(r) {
				return r
			}
			return -1
		}, folded)
	}
	if folded == "" {
		return dst
	}
	return append(dst, folded)
}
