// Command docdist measures how different text documents are.
//
// Each document becomes a word-frequency vector; the distance between two
// documents is the angle between their vectors, 0 for identical word usage
// and π/2 for documents sharing no words.
//
//	docdist compare a.txt b.txt
//	docdist matrix *.txt
//	docdist history --limit 10
//	docdist config init
//
// Results go to stdout, logs to stderr. Successful comparisons and their
// failures are recorded in a SQLite history unless disabled in the config.
package main
