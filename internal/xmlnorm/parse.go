package xmlnorm

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node is one element of a parsed XML document.
type Node struct {
	Tag      string
	Attrs    []xml.Attr
	Children []*Node
	Text     string
}

// ParseError reports input that could not be read as a single well-formed
// XML document.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid XML at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errNoRoot       = errors.New("document has no root element")
	errTrailingData = errors.New("unexpected element after root element")
	errStrayText    = errors.New("text outside root element")
)

// Parse reads a complete XML document from r. Comments, processing
// instructions and directives such as DOCTYPE are skipped. Encodings other
// than UTF-8 are honored when declared in the prolog.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Offset: dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, &ParseError{Offset: dec.InputOffset(), Err: errTrailingData}
			}
			n := &Node{Tag: t.Name.Local}
			if len(t.Attr) > 0 {
				n.Attrs = append([]xml.Attr(nil), t.Attr...)
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, &ParseError{Offset: dec.InputOffset(), Err: errStrayText}
			}
		}
	}

	if root == nil {
		return nil, &ParseError{Offset: dec.InputOffset(), Err: errNoRoot}
	}
	return root, nil
}
