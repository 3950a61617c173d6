package ast

import "github.com/dhamidi/velo/component/estree"

// ExpressionTag is an inline `{expression}` interpolation.
type ExpressionTag struct {
	Span
	Expression *estree.Node
}

func (*ExpressionTag) fragmentNode()       {}
func (*ExpressionTag) attributeValuePart() {}

// HtmlTag is `{@html expression}`.
type HtmlTag struct {
	Span
	Expression *estree.Node
}

func (*HtmlTag) fragmentNode() {}

// ConstTag is `{@const declaration}`.
type ConstTag struct {
	Span
	Declaration *estree.Node
}

func (*ConstTag) fragmentNode() {}

// DebugTag is `{@debug a, b, c}`.
type DebugTag struct {
	Span
	Identifiers []*estree.Node
}

func (*DebugTag) fragmentNode() {}

// RenderTag is `{@render snippet(args)}`.
type RenderTag struct {
	Span
	Expression *estree.Node
}

func (*RenderTag) fragmentNode() {}
