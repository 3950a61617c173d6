package ast

// StyleSheet is the parsed `<style>` region.
type StyleSheet struct {
	Span
	Attributes []AttributeNode
	Children   []StyleSheetChild
	Content    CSSContent
}

// CSSContent is the raw inner range of the style element.
type CSSContent struct {
	Start  int
	End    int
	Styles string
}

// StyleSheetChild is a top-level stylesheet child: Rule or Atrule.
type StyleSheetChild interface {
	Node
	styleSheetChild()
}

// CSSBlockChild is a `{...}` block child: Declaration, Rule or Atrule.
type CSSBlockChild interface {
	Node
	cssBlockChild()
}

// CSSRule is `prelude { block }`.
type CSSRule struct {
	Span
	Prelude *SelectorList
	Block   *CSSBlock
}

func (*CSSRule) styleSheetChild() {}
func (*CSSRule) cssBlockChild()  {}

// CSSAtrule is `@name prelude;` or `@name prelude { block }`.
type CSSAtrule struct {
	Span
	Name    string
	Prelude string
	Block   *CSSBlock
}

func (*CSSAtrule) styleSheetChild() {}
func (*CSSAtrule) cssBlockChild()  {}

// CSSBlock is a `{ ... }` region of declarations and nested rules.
type CSSBlock struct {
	Span
	Children []CSSBlockChild
}

// CSSDeclaration is `property: value`.
type CSSDeclaration struct {
	Span
	Property string
	Value    string
}

func (*CSSDeclaration) cssBlockChild() {}

// SelectorList is a comma-separated list of complex selectors.
type SelectorList struct {
	Span
	Children []*ComplexSelector
}

// ComplexSelector is a sequence of relative selectors.
type ComplexSelector struct {
	Span
	Children []*RelativeSelector
}

// RelativeSelector is a compound selector with the combinator that precedes
// it (nil for the first selector in a complex selector).
type RelativeSelector struct {
	Span
	Combinator *CSSCombinator
	Selectors  []SimpleSelector
}

// CSSCombinator is one of ` `, `>`, `+`, `~`, `||`.
type CSSCombinator struct {
	Span
	Name string
}

// SimpleSelector is one unit of a compound selector.
type SimpleSelector interface {
	Node
	simpleSelector()
}

// TypeSelector is an element-name (or `*`) selector.
type TypeSelector struct {
	Span
	Name string
}

func (*TypeSelector) simpleSelector() {}

// IDSelector is `#name`.
type IDSelector struct {
	Span
	Name string
}

func (*IDSelector) simpleSelector() {}

// ClassSelector is `.name`.
type ClassSelector struct {
	Span
	Name string
}

func (*ClassSelector) simpleSelector() {}

// AttributeSelector is `[name matcher value flags]`.
type AttributeSelector struct {
	Span
	Name    string
	Matcher *string
	Value   *string
	Flags   *string
}

func (*AttributeSelector) simpleSelector() {}

// PseudoClassSelector is `:name` or `:name(selectors)`.
type PseudoClassSelector struct {
	Span
	Name string
	Args *SelectorList
}

func (*PseudoClassSelector) simpleSelector() {}

// PseudoElementSelector is `::name`.
type PseudoElementSelector struct {
	Span
	Name string
}

func (*PseudoElementSelector) simpleSelector() {}

// NestingSelector is `&`.
type NestingSelector struct {
	Span
	Name string
}

func (*NestingSelector) simpleSelector() {}

// Percentage is a keyframe selector like `50%`.
type Percentage struct {
	Span
	Value string
}

func (*Percentage) simpleSelector() {}

// Nth is an `nth-child`-style argument like `2n+1` or `odd`.
type Nth struct {
	Span
	Value string
}

func (*Nth) simpleSelector() {}
