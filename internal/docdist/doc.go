// Package docdist measures the distance between documents as the angle between
// their word-frequency vectors.
//
// Each document runs through tokenize → aggregate → order independently; the
// two resulting vectors meet only in the final angle computation. Compare runs
// the per-document stages concurrently and joins before comparing. CompareAll
// extends this to every pair of a document set for duplicate finding and
// clustering.
//
// The package performs no I/O. Documents arrive as in-memory lines (see
// internal/source) and results leave as plain values for the CLI to render.
package docdist
