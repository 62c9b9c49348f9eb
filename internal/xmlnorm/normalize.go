package xmlnorm

import (
	"io"
	"strings"
)

// Normalize folds n into a Value.
//
// An element without children is its trimmed text, or an empty mapping when
// it has no text. An element with children is a mapping from child tag to
// the child's value; tags occurring more than once map to a List in document
// order. Text next to child elements and all attributes are discarded.
func Normalize(n *Node) Value {
	if len(n.Children) == 0 {
		text := strings.TrimSpace(n.Text)
		if text == "" {
			return NewMap()
		}
		return String(text)
	}

	counts := make(map[string]int, len(n.Children))
	for _, c := range n.Children {
		counts[c.Tag]++
	}

	m := NewMap()
	for _, c := range n.Children {
		v := Normalize(c)
		if counts[c.Tag] == 1 {
			m.Set(c.Tag, v)
			continue
		}
		existing, ok := m.Get(c.Tag)
		if !ok {
			m.Set(c.Tag, List{v})
			continue
		}
		m.Set(c.Tag, append(existing.(List), v))
	}
	return m
}

// Document wraps the normalized root under its own tag, which is the shape
// printed for XML responses.
func Document(root *Node) Value {
	m := NewMap()
	m.Set(root.Tag, Normalize(root))
	return m
}

// Convert parses r and returns its normalized document.
func Convert(r io.Reader) (Value, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return Document(root), nil
}
