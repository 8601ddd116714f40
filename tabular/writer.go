package tabular

import (
	"bufio"
	"io"
	"strings"
)

// Writer writes comma separated records where every field is quoted.
//
// encoding/csv only quotes fields that need it, consumers of these exports expect
// every field quoted. Errors are sticky: after the first failure Write does nothing and
// Flush returns it. Its zero value is not usable, use NewWriter.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes a single record terminated by a newline.
func (w *Writer) Write(fields ...string) {
	if w.err != nil {
		return
	}
	for i, f := range fields {
		if i > 0 {
			w.w.WriteByte(',')
		}
		w.w.WriteByte('"')
		w.w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.w.WriteByte('"')
	}
	_, w.err = w.w.WriteString("\n")
}

// Separator writes the blank two-field row used between blocks.
func (w *Writer) Separator() { w.Write("", "") }

// Flush writes any buffered data and returns the first error encountered.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}
