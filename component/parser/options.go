package parser

import (
	"strings"

	"github.com/dhamidi/velo/component/ast"
	"github.com/dhamidi/velo/component/estree"
)

// interpretOptions turns the attributes of a well-placed `<svelte:options>`
// element into the typed options lifted onto the root. Enum-valued fields
// are rewritten to their canonical spellings (lowercased namespace,
// "injected" css mode).
func (p *Parser) interpretOptions(span ast.Span, attributes []ast.AttributeNode) *ast.SvelteOptions {
	options := &ast.SvelteOptions{Span: span, Attributes: attributes}

	for _, a := range attributes {
		attr, ok := a.(*ast.Attribute)
		if !ok {
			continue
		}
		switch attr.Name {
		case "runes":
			options.Runes = attributeBool(attr)
		case "immutable":
			options.Immutable = attributeBool(attr)
		case "accessors":
			options.Accessors = attributeBool(attr)
		case "preserveWhitespace":
			options.PreserveWhitespace = attributeBool(attr)
		case "namespace":
			if text := attributeText(attr); text != "" {
				options.Namespace = strings.ToLower(text)
			}
		case "css":
			if text := attributeText(attr); text != "" {
				options.CSS = strings.ToLower(text)
			}
		case "customElement":
			if text := attributeText(attr); text != "" {
				options.CustomElement = &ast.CustomElement{Tag: text}
			} else if expr := attributeExpression(attr); expr != nil {
				if tag := customElementTag(expr); tag != "" {
					options.CustomElement = &ast.CustomElement{Tag: tag}
				}
			}
		}
	}
	return options
}

// attributeBool interprets bare attributes as true and `={true|false}`
// values as their literal.
func attributeBool(attr *ast.Attribute) *bool {
	t := true
	f := false
	if attr.Value.True {
		return &t
	}
	if expr := attributeExpression(attr); expr != nil {
		if v, ok := expr.Get("value").(bool); ok {
			if v {
				return &t
			}
			return &f
		}
	}
	return nil
}

// attributeText returns the value of a single-text-part attribute.
func attributeText(attr *ast.Attribute) string {
	if attr.Value.True || len(attr.Value.Parts) != 1 {
		return ""
	}
	if text, ok := attr.Value.Parts[0].(*ast.Text); ok {
		return text.Data
	}
	return ""
}

// attributeExpression returns the expression of a single-expression
// attribute value.
func attributeExpression(attr *ast.Attribute) *estree.Node {
	if attr.Value.True || len(attr.Value.Parts) != 1 {
		return nil
	}
	if tag, ok := attr.Value.Parts[0].(*ast.ExpressionTag); ok {
		return tag.Expression
	}
	return nil
}

// customElementTag pulls the tag out of `customElement={{ tag: "x-y" }}` or
// `customElement={"x-y"}`.
func customElementTag(expr *estree.Node) string {
	switch expr.Type() {
	case "Literal":
		if s, ok := expr.Get("value").(string); ok {
			return s
		}
	case "ObjectExpression":
		props, _ := expr.Get("properties").([]*estree.Node)
		for _, prop := range props {
			key, _ := prop.Get("key").(*estree.Node)
			if key == nil {
				continue
			}
			name, _ := key.Get("name").(string)
			if name == "" {
				name, _ = key.Get("value").(string)
			}
			if name != "tag" {
				continue
			}
			if value, ok := prop.Get("value").(*estree.Node); ok {
				if s, ok := value.Get("value").(string); ok {
					return s
				}
			}
		}
	}
	return ""
}
