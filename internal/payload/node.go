// Package payload wraps decoded JSON of unknown shape so it can be walked
// without type assertions at every level. Every accessor is total: asking a
// missing or mistyped node for anything yields another missing node or a
// false ok, never a panic.
package payload

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Node is a position in a decoded JSON tree. The zero Node is "missing".
type Node struct {
	v any
}

func wrap(v any) Node {
	return Node{v: v}
}

// Decode parses raw JSON into a Node. Numbers decode as float64.
func Decode(data []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Node{}, fmt.Errorf("failed to decode payload: %w", err)
	}
	return Node{v: v}, nil
}

// Exists reports whether the node holds a non-null value.
func (n Node) Exists() bool {
	return n.v != nil
}

func (n Node) IsObject() bool {
	_, ok := n.v.(map[string]any)
	return ok
}

func (n Node) IsArray() bool {
	_, ok := n.v.([]any)
	return ok
}

// Get returns the named field of an object node.
func (n Node) Get(key string) Node {
	m, ok := n.v.(map[string]any)
	if !ok {
		return Node{}
	}
	return Node{v: m[key]}
}

// Path follows a chain of object keys.
func (n Node) Path(keys ...string) Node {
	for _, k := range keys {
		n = n.Get(k)
	}
	return n
}

// Len is the length of an array node, 0 for anything else.
func (n Node) Len() int {
	a, ok := n.v.([]any)
	if !ok {
		return 0
	}
	return len(a)
}

// Index returns the i-th element of an array node.
func (n Node) Index(i int) Node {
	a, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(a) {
		return Node{}
	}
	return Node{v: a[i]}
}

func (n Node) First() Node {
	return n.Index(0)
}

func (n Node) Last() Node {
	return n.Index(n.Len() - 1)
}

// Find returns the first array element matching pred.
func (n Node) Find(pred func(Node) bool) Node {
	a, ok := n.v.([]any)
	if !ok {
		return Node{}
	}
	for _, el := range a {
		if node := (Node{v: el}); pred(node) {
			return node
		}
	}
	return Node{}
}

func (n Node) AsString() (string, bool) {
	s, ok := n.v.(string)
	return s, ok
}

func (n Node) Number() (float64, bool) {
	f, ok := n.v.(float64)
	return f, ok
}

// Int returns a numeric node truncated to int, or 0 when it is not a number.
func (n Node) Int() int {
	f, ok := n.Number()
	if !ok {
		return 0
	}
	return int(f)
}

// Text renders a string or number node as text. Identifiers such as season ids
// arrive as either.
func (n Node) Text() (string, bool) {
	switch v := n.v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// NonEmptyString returns the node as a string pointer, nil for non-strings and "".
func (n Node) NonEmptyString() *string {
	s, ok := n.AsString()
	if !ok || s == "" {
		return nil
	}
	return &s
}

func (n Node) NumberPtr() *float64 {
	f, ok := n.Number()
	if !ok {
		return nil
	}
	return &f
}

func (n Node) TextPtr() *string {
	s, ok := n.Text()
	if !ok {
		return nil
	}
	return &s
}
