// Package ast defines the typed AST for component files: the template node
// families, attributes and directives, and the stylesheet nodes. All nodes
// carry byte-offset spans into the normalized source. Nodes are produced by
// the parser and immutable afterwards.
package ast

import "github.com/dhamidi/velo/component/estree"

// Span is the half-open byte range [Start, End) a node covers in the
// normalized source.
type Span struct {
	Start int
	End   int
}

// Pos makes Span usable as an embedded position mixin.
func (s Span) Pos() Span { return s }

// Node is implemented by every AST node.
type Node interface {
	Pos() Span
}

// FragmentNode is implemented by every node that may appear as a fragment
// child.
type FragmentNode interface {
	Node
	fragmentNode()
}

// AttributeNode is implemented by attributes, spread attributes and
// directives.
type AttributeNode interface {
	Node
	attributeNode()
}

// AttributeValuePart is a piece of an attribute value sequence: Text or
// ExpressionTag.
type AttributeValuePart interface {
	Node
	attributeValuePart()
}

// Fragment is an ordered sequence of template children. It carries no span
// of its own.
type Fragment struct {
	Nodes []FragmentNode
}

// Root is the result of parsing one component file.
type Root struct {
	Span
	Fragment *Fragment
	Options  *SvelteOptions
	Instance *Script
	Module   *Script
	CSS      *StyleSheet
	Metadata Metadata
	// JS is reserved for hoisted module-level programs; always present
	// (and currently always empty) in serialized output.
	JS []*estree.Node
}

// Metadata carries facts discovered while parsing.
type Metadata struct {
	TS bool
}

// Script is a `<script>` region. Context is "default" or "module".
type Script struct {
	Span
	Context    string
	Content    *estree.Node
	Attributes []AttributeNode
}

// SvelteOptions is the interpreted `<svelte:options .../>` element, lifted
// out of the fragment onto the root.
type SvelteOptions struct {
	Span
	Runes              *bool
	Immutable          *bool
	Accessors          *bool
	PreserveWhitespace *bool
	Namespace          string
	CSS                string
	CustomElement      *CustomElement
	Attributes         []AttributeNode
}

// CustomElement holds the customElement option value.
type CustomElement struct {
	Tag string
}

// Text is a run of literal template text. Raw preserves the exact source
// bytes; Data has character references decoded.
type Text struct {
	Span
	Raw  string
	Data string
}

func (*Text) fragmentNode()       {}
func (*Text) attributeValuePart() {}

// Comment is an HTML comment `<!-- ... -->`.
type Comment struct {
	Span
	Data string
}

func (*Comment) fragmentNode() {}
