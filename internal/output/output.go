package output

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineSize bounds a single raw response line. Issue searches return one
// long JSON line.
const maxLineSize = 64 << 20 // 64MB

// Printer writes results to w, typically standard output.
type Printer struct {
	w         io.Writer
	highlight bool
}

// NewPrinter creates a printer. When highlight is true JSON lines are
// syntax highlighted; callers enable it only for terminals.
func NewPrinter(w io.Writer, highlight bool) *Printer {
	return &Printer{w: w, highlight: highlight}
}

// JSON writes v as a single line of JSON. Nothing is written if encoding
// fails.
func (p *Printer) JSON(v interface{}) error {
	line, err := MarshalLine(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	text := string(line)
	if p.highlight {
		text = HighlightJSON(text)
	}
	_, err = fmt.Fprintln(p.w, text)
	return err
}

// Lines copies r to the output line by line, verbatim.
func (p *Printer) Lines(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(p.w, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
