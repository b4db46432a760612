// Package wordfreq aggregates word tokens into frequency maps and orders them
// into canonical frequency vectors.
//
// A Vector is sorted strictly ascending by word under Go's byte-wise string
// ordering. Every comparison in the repository relies on that single ordering,
// so vectors built by Order can be merge-joined against each other directly.
// Vectors are values: no function in this package mutates a slice it receives.
package wordfreq

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvariantViolation reports a vector that is not strictly ascending or
// carries an invalid entry. It indicates a bug, not bad input.
var ErrInvariantViolation = errors.New("frequency vector invariant violated")

// InvariantError describes the first offending position in a vector.
type InvariantError struct {
	Index  int
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s at index %d: %s", ErrInvariantViolation, e.Index, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// Map counts occurrences of each distinct word.
type Map map[string]int

// Entry is one (word, count) component of a frequency vector.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Vector is a frequency vector ordered strictly ascending by Word.
type Vector []Entry

// Aggregate counts tokens in a single pass. Empty input yields an empty map.
func Aggregate(tokens []string) Map {
	counts := make(Map, len(tokens)/2+1)
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}

// Order returns the entries of m sorted ascending by word.
func Order(m Map) Vector {
	entries := make([]Entry, 0, len(m))
	for word, count := range m {
		entries = append(entries, Entry{Word: word, Count: count})
	}
	return mergeSort(entries)
}

// Sort returns a sorted copy of entries. The input slice is left untouched.
func Sort(entries []Entry) Vector {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return mergeSort(cp)
}

// Len returns the number of distinct words.
func (v Vector) Len() int { return len(v) }

// Total returns the sum of all counts, i.e. the token count of the source.
func (v Vector) Total() int {
	total := 0
	for _, e := range v {
		total += e.Count
	}
	return total
}

// Count returns the count recorded for word, or 0 when absent.
func (v Vector) Count(word string) int {
	i := sort.Search(len(v), func(i int) bool { return v[i].Word >= word })
	if i < len(v) && v[i].Word == word {
		return v[i].Count
	}
	return 0
}

// Map converts the vector back into a frequency map.
func (v Vector) Map() Map {
	m := make(Map, len(v))
	for _, e := range v {
		m[e.Word] = e.Count
	}
	return m
}

// Validate checks that words are non-empty and strictly ascending and that
// every count is positive.
func (v Vector) Validate() error {
	for i, e := range v {
		if e.Word == "" {
			return &InvariantError{Index: i, Reason: "empty word"}
		}
		if e.Count < 1 {
			return &InvariantError{Index: i, Reason: fmt.Sprintf("count %d for %q", e.Count, e.Word)}
		}
		if i > 0 && v[i-1].Word >= e.Word {
			return &InvariantError{Index: i, Reason: fmt.Sprintf("%q does not follow %q", e.Word, v[i-1].Word)}
		}
	}
	return nil
}
