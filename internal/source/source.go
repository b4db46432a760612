// Package source reads documents from files or streams as ordered lines.
//
// It is the only place docdist touches document storage. Failures surface as
// *UnreadableSourceError so the comparison aborts before any tokenization.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"docdist/internal/config"
	"docdist/internal/docdist"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// ErrUnreadableSource reports a document that could not be obtained.
var ErrUnreadableSource = errors.New("unreadable source")

// UnreadableSourceError names the document that failed and why.
type UnreadableSourceError struct {
	Path string
	Err  error
}

func (e *UnreadableSourceError) Error() string {
	return fmt.Sprintf("error opening or reading input file %s: %v", e.Path, e.Err)
}

func (e *UnreadableSourceError) Unwrap() []error { return []error{ErrUnreadableSource, e.Err} }

// ReadFile loads the document at path. "~" is expanded and "-" reads stdin.
func ReadFile(path string) (docdist.Document, error) {
	if path == StdinName {
		return Read("stdin", os.Stdin)
	}
	expanded, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return docdist.Document{}, &UnreadableSourceError{Path: path, Err: err}
	}
	if expanded == "" {
		return docdist.Document{}, &UnreadableSourceError{Path: path, Err: errors.New("empty path")}
	}
	file, err := os.Open(expanded)
	if err != nil {
		return docdist.Document{}, &UnreadableSourceError{Path: path, Err: err}
	}
	defer file.Close()

	doc, err := Read(path, file)
	if err != nil {
		return docdist.Document{}, err
	}
	return doc, nil
}

// Read splits r into lines. Line terminators are dropped; a final line without
// a terminator is kept. Lines may be arbitrarily long.
func Read(name string, r io.Reader) (docdist.Document, error) {
	reader := bufio.NewReader(r)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return docdist.Document{}, &UnreadableSourceError{Path: name, Err: err}
		}
	}
	return docdist.Document{Name: name, Lines: lines}, nil
}
