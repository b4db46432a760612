// Package textutil splits document text into case-folded word tokens.
//
// A token is a maximal run of alphanumeric characters, lower-cased. Every other
// character is a separator and is dropped. Tokenization is line-bounded: callers
// feed one line at a time (TokenizeLines does this for a whole document), so a
// word never spans two lines.
//
// Two character policies exist:
//   - PolicyASCII classifies only [A-Za-z0-9] as word characters. Every byte of
//     a multi-byte UTF-8 sequence is a separator.
//   - PolicyUnicode accepts any Unicode letter or digit and lower-cases with
//     golang.org/x/text/cases.
//
// Tokenizers hold no mutable state and are safe for concurrent use.
package textutil
