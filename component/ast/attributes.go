package ast

import "github.com/dhamidi/velo/component/estree"

// AttributeValue is `true` for a bare attribute, otherwise an ordered
// sequence of Text and ExpressionTag parts.
type AttributeValue struct {
	True  bool
	Parts []AttributeValuePart
}

// TrueValue is the value of a bare attribute like `disabled`.
func TrueValue() AttributeValue {
	return AttributeValue{True: true}
}

// PartsValue wraps value parts into an AttributeValue.
func PartsValue(parts ...AttributeValuePart) AttributeValue {
	return AttributeValue{Parts: parts}
}

// Attribute is a plain `name` or `name=value` attribute, including the
// `{shorthand}` form.
type Attribute struct {
	Span
	Name  string
	Value AttributeValue
}

func (*Attribute) attributeNode() {}

// SpreadAttribute is `{...expression}`.
type SpreadAttribute struct {
	Span
	Expression *estree.Node
}

func (*SpreadAttribute) attributeNode() {}

// BindDirective is `bind:name[={expression}]`.
type BindDirective struct {
	Span
	Name       string
	Expression *estree.Node
	Modifiers  []string
}

func (*BindDirective) attributeNode() {}

// OnDirective is `on:name[|modifiers][={expression}]`.
type OnDirective struct {
	Span
	Name       string
	Expression *estree.Node
	Modifiers  []string
}

func (*OnDirective) attributeNode() {}

// UseDirective is `use:name[={expression}]`.
type UseDirective struct {
	Span
	Name       string
	Expression *estree.Node
	Modifiers  []string
}

func (*UseDirective) attributeNode() {}

// TransitionDirective is `transition:`/`in:`/`out:` with intro/outro flags.
type TransitionDirective struct {
	Span
	Name       string
	Expression *estree.Node
	Modifiers  []string
	Intro      bool
	Outro      bool
}

func (*TransitionDirective) attributeNode() {}

// AnimateDirective is `animate:name[={expression}]`.
type AnimateDirective struct {
	Span
	Name       string
	Expression *estree.Node
	Modifiers  []string
}

func (*AnimateDirective) attributeNode() {}

// ClassDirective is `class:name[={expression}]`; a missing value means the
// expression is the identifier of the same name.
type ClassDirective struct {
	Span
	Name       string
	Expression *estree.Node
	Modifiers  []string
}

func (*ClassDirective) attributeNode() {}

// StyleDirective is `style:name[=value]` with an optional `|important`
// modifier; its value parses like an attribute value.
type StyleDirective struct {
	Span
	Name      string
	Value     AttributeValue
	Modifiers []string
}

func (*StyleDirective) attributeNode() {}

// LetDirective is `let:name[={pattern}]`.
type LetDirective struct {
	Span
	Name       string
	Expression *estree.Node
	Modifiers  []string
}

func (*LetDirective) attributeNode() {}
