// Package estree provides the generic node representation for script-side
// ASTs (expressions, patterns, programs) in the ESTree JSON convention, plus
// the canonicalization pass that normalizes sub-parser output.
package estree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is a script-side AST node. Properties keep their insertion order so
// that serialized output is deterministic and matches the reference shape.
// Every node carries "type", "start" and "end"; further properties are
// appended by the producing parser in the reference's emission order.
type Node struct {
	props []prop
}

type prop struct {
	key   string
	value any
}

// NewNode creates a node with the three mandatory leading properties.
func NewNode(typ string, start, end int) *Node {
	n := &Node{}
	n.Set("type", typ)
	n.Set("start", start)
	n.Set("end", end)
	return n
}

// Type returns the node's "type" property, or "" if absent.
func (n *Node) Type() string {
	if s, ok := n.Get("type").(string); ok {
		return s
	}
	return ""
}

// Start returns the node's "start" offset, or -1 if absent.
func (n *Node) Start() int {
	if v, ok := n.Get("start").(int); ok {
		return v
	}
	return -1
}

// End returns the node's "end" offset, or -1 if absent.
func (n *Node) End() int {
	if v, ok := n.Get("end").(int); ok {
		return v
	}
	return -1
}

// Get returns the value for key, or nil if the property is absent.
func (n *Node) Get(key string) any {
	for _, p := range n.props {
		if p.key == key {
			return p.value
		}
	}
	return nil
}

// Has reports whether the property is present (even with a nil value).
func (n *Node) Has(key string) bool {
	for _, p := range n.props {
		if p.key == key {
			return true
		}
	}
	return false
}

// Set assigns key to value, keeping the key's original position if it is
// already present and appending otherwise.
func (n *Node) Set(key string, value any) *Node {
	for i, p := range n.props {
		if p.key == key {
			n.props[i].value = value
			return n
		}
	}
	n.props = append(n.props, prop{key, value})
	return n
}

// Delete removes the property if present.
func (n *Node) Delete(key string) {
	for i, p := range n.props {
		if p.key == key {
			n.props = append(n.props[:i], n.props[i+1:]...)
			return
		}
	}
}

// Keys returns the property names in emission order.
func (n *Node) Keys() []string {
	keys := make([]string, len(n.props))
	for i, p := range n.props {
		keys[i] = p.key
	}
	return keys
}

// SetStart updates the "start" offset in place.
func (n *Node) SetStart(start int) { n.Set("start", start) }

// SetEnd updates the "end" offset in place.
func (n *Node) SetEnd(end int) { n.Set("end", end) }

// Walk visits n and every *Node reachable through its properties,
// parents before children. Returning false from fn prunes the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, p := range n.props {
		walkValue(p.value, fn)
	}
}

func walkValue(v any, fn func(*Node) bool) {
	switch v := v.(type) {
	case *Node:
		v.Walk(fn)
	case []*Node:
		for _, child := range v {
			child.Walk(fn)
		}
	case []any:
		for _, child := range v {
			walkValue(child, fn)
		}
	}
}

// MarshalJSON emits the properties in insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range n.props {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(p.value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewObject returns a bare node with no mandatory properties, for
// auxiliary JSON objects that are not AST nodes (regex info, template
// element values).
func NewObject() *Node {
	return &Node{}
}

// EmptyIdentifier returns the recovery placeholder used in loose mode:
// an Identifier with an empty name collapsed onto a single offset.
func EmptyIdentifier(offset int) *Node {
	n := NewNode("Identifier", offset, offset)
	n.Set("name", "")
	return n
}

// Identifier builds an Identifier node for name spanning [start, end).
func Identifier(name string, start, end int) *Node {
	n := NewNode("Identifier", start, end)
	n.Set("name", name)
	return n
}
