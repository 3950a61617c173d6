package parser

import (
	"strings"

	"github.com/dhamidi/velo/component/ast"
	"github.com/dhamidi/velo/component/estree"
)

func isAttributeNameByte(ch byte) bool {
	return isIdentByte(ch) || ch == '-' || ch == ':' || ch == '.' || ch == '|' || ch == '@'
}

// parseAttributes reads attributes until `>`, `/` or EOF. With textOnly set
// (top-level script/style tags) quoted values are plain text and brace forms
// are not recognized.
func (p *Parser) parseAttributes(textOnly bool) ([]ast.AttributeNode, error) {
	var attributes []ast.AttributeNode
	seen := make(map[string]bool)

	for {
		p.allowWhitespace()
		if p.eof() || p.peek(0) == '>' || p.startsWith("/>") || p.peek(0) == '/' {
			return attributes, nil
		}

		var attr ast.AttributeNode
		var err error
		if p.peek(0) == '{' && !textOnly {
			attr, err = p.parseBraceAttribute()
		} else {
			attr, err = p.parseNamedAttribute(textOnly)
		}
		if err != nil {
			return nil, err
		}
		if attr == nil {
			return attributes, nil
		}

		if named, ok := attr.(*ast.Attribute); ok {
			if seen[named.Name] {
				if err := p.error(CodeDuplicateAttribute, named.Start, named.End,
					"attributes need to be unique"); err != nil {
					return nil, err
				}
			}
			seen[named.Name] = true
		}

		attributes = append(attributes, attr)
	}
}

// parseBraceAttribute parses `{...expression}` spreads and `{name}`
// shorthand attributes.
func (p *Parser) parseBraceAttribute() (ast.AttributeNode, error) {
	start := p.index
	p.index++ // `{`
	p.allowWhitespace()

	if p.eat("...") {
		closeBrace, err := p.closeBraceFor(start)
		if err != nil {
			return nil, err
		}
		expression, end, err := p.expression(p.index, closeBrace, estree.ContextTemplateExpression)
		if err != nil {
			return nil, err
		}
		p.index = end
		p.allowWhitespace()
		p.index = closeBrace
		p.eat("}")
		return &ast.SpreadAttribute{
			Span:       ast.Span{Start: start, End: p.index},
			Expression: expression,
		}, nil
	}

	nameStart := p.index
	name := p.readUntilByte(func(ch byte) bool { return !isIdentByte(ch) })
	nameEnd := p.index

	if name == "" {
		if err := p.error(CodeExpectedToken, p.index, p.index,
			"expected an attribute name"); err != nil {
			return nil, err
		}
		// Recovery: swallow the brace group as an empty-name attribute.
		closeBrace, err := p.closeBraceFor(start)
		if err != nil {
			return nil, err
		}
		p.index = closeBrace
		p.eat("}")
		tag := &ast.ExpressionTag{
			Span:       ast.Span{Start: nameStart, End: nameStart},
			Expression: estree.EmptyIdentifier(nameStart),
		}
		return &ast.Attribute{
			Span:  ast.Span{Start: start, End: p.index},
			Name:  "",
			Value: ast.PartsValue(tag),
		}, nil
	}

	p.allowWhitespace()
	if err := p.eatRequired("}"); err != nil {
		return nil, err
	}

	tag := &ast.ExpressionTag{
		Span:       ast.Span{Start: nameStart, End: nameEnd},
		Expression: estree.Identifier(name, nameStart, nameEnd),
	}
	return &ast.Attribute{
		Span:  ast.Span{Start: start, End: p.index},
		Name:  name,
		Value: ast.PartsValue(tag),
	}, nil
}

var directivePrefixes = map[string]bool{
	"bind": true, "on": true, "use": true, "class": true, "style": true,
	"transition": true, "in": true, "out": true, "animate": true, "let": true,
}

func (p *Parser) parseNamedAttribute(textOnly bool) (ast.AttributeNode, error) {
	start := p.index
	fullName := p.readUntilByte(func(ch byte) bool { return !isAttributeNameByte(ch) })
	if fullName == "" {
		// Something unparseable before `>`; skip one byte to guarantee
		// progress and let the element code resynchronize.
		if err := p.error(CodeExpectedToken, p.index, p.index,
			"expected an attribute name"); err != nil {
			return nil, err
		}
		p.index++
		return nil, nil
	}

	if colon := strings.IndexByte(fullName, ':'); colon >= 0 && !textOnly {
		prefix := fullName[:colon]
		if directivePrefixes[prefix] {
			return p.parseDirective(start, prefix, fullName[colon+1:])
		}
	}

	value := ast.TrueValue()
	if p.eat("=") {
		p.allowWhitespace()
		parsed, err := p.parseAttributeValue(textOnly)
		if err != nil {
			return nil, err
		}
		value = parsed
	}

	return &ast.Attribute{
		Span:  ast.Span{Start: start, End: p.index},
		Name:  fullName,
		Value: value,
	}, nil
}

// parseDirective parses `prefix:name|modifiers[=value]`.
func (p *Parser) parseDirective(start int, prefix, rest string) (ast.AttributeNode, error) {
	parts := strings.Split(rest, "|")
	name := parts[0]
	modifiers := parts[1:]
	if modifiers == nil {
		modifiers = []string{}
	}

	if name == "" {
		if err := p.error(CodeInvalidDirective, start, p.index,
			"`"+prefix+":` requires a name"); err != nil {
			return nil, err
		}
	}

	span := func() ast.Span { return ast.Span{Start: start, End: p.index} }

	switch prefix {
	case "style":
		value := ast.TrueValue()
		if p.eat("=") {
			p.allowWhitespace()
			parsed, err := p.parseAttributeValue(false)
			if err != nil {
				return nil, err
			}
			value = parsed
		}
		important := []string{}
		for _, m := range modifiers {
			if m == "important" {
				important = append(important, m)
			}
		}
		return &ast.StyleDirective{Span: span(), Name: name, Value: value, Modifiers: important}, nil

	case "bind":
		expression, err := p.parseDirectiveValue()
		if err != nil {
			return nil, err
		}
		if expression == nil {
			nameStart := start + len(prefix) + 1
			expression = estree.Identifier(name, nameStart, nameStart+len(name))
		}
		return &ast.BindDirective{Span: span(), Name: name, Expression: expression, Modifiers: modifiers}, nil

	case "class":
		expression, err := p.parseDirectiveValue()
		if err != nil {
			return nil, err
		}
		if expression == nil {
			nameStart := start + len(prefix) + 1
			expression = estree.Identifier(name, nameStart, nameStart+len(name))
		}
		return &ast.ClassDirective{Span: span(), Name: name, Expression: expression, Modifiers: modifiers}, nil

	case "on":
		expression, err := p.parseDirectiveValue()
		if err != nil {
			return nil, err
		}
		return &ast.OnDirective{Span: span(), Name: name, Expression: expression, Modifiers: modifiers}, nil

	case "use":
		expression, err := p.parseDirectiveValue()
		if err != nil {
			return nil, err
		}
		return &ast.UseDirective{Span: span(), Name: name, Expression: expression, Modifiers: modifiers}, nil

	case "animate":
		expression, err := p.parseDirectiveValue()
		if err != nil {
			return nil, err
		}
		return &ast.AnimateDirective{Span: span(), Name: name, Expression: expression, Modifiers: modifiers}, nil

	case "let":
		expression, err := p.parseDirectiveValue()
		if err != nil {
			return nil, err
		}
		return &ast.LetDirective{Span: span(), Name: name, Expression: expression, Modifiers: modifiers}, nil

	case "transition", "in", "out":
		expression, err := p.parseDirectiveValue()
		if err != nil {
			return nil, err
		}
		filtered := []string{}
		for _, m := range modifiers {
			if m == "local" || m == "global" {
				filtered = append(filtered, m)
			}
		}
		return &ast.TransitionDirective{
			Span:       span(),
			Name:       name,
			Expression: expression,
			Modifiers:  filtered,
			Intro:      prefix == "transition" || prefix == "in",
			Outro:      prefix == "transition" || prefix == "out",
		}, nil
	}

	// Unreachable: callers only pass known prefixes.
	return nil, p.error(CodeInvalidDirective, start, p.index, "unknown directive")
}

// parseDirectiveValue parses the optional `={expression}` of a directive.
// A quoted or unquoted text value is invalid on directives.
func (p *Parser) parseDirectiveValue() (*estree.Node, error) {
	if !p.eat("=") {
		return nil, nil
	}
	p.allowWhitespace()

	if p.peek(0) == '{' {
		braceStart := p.index
		p.index++
		p.allowWhitespace()
		closeBrace, err := p.closeBraceFor(braceStart)
		if err != nil {
			return nil, err
		}
		expression, end, err := p.expression(p.index, closeBrace, estree.ContextTemplateExpression)
		if err != nil {
			return nil, err
		}
		p.index = end
		p.allowWhitespace()
		p.index = closeBrace
		p.eat("}")
		return expression, nil
	}

	// Tolerate `on:click="{handler}"` style quoting by unwrapping a quoted
	// single-expression value; anything else is invalid.
	if p.peek(0) == '"' || p.peek(0) == '\'' {
		value, err := p.parseQuotedValue(p.source[p.index], false)
		if err != nil {
			return nil, err
		}
		if len(value.Parts) == 1 {
			if tag, ok := value.Parts[0].(*ast.ExpressionTag); ok {
				return tag.Expression, nil
			}
		}
	}

	if err := p.error(CodeInvalidDirective, p.index, p.index,
		"directive value must be an expression enclosed in curly braces"); err != nil {
		return nil, err
	}
	return nil, nil
}

// parseAttributeValue parses the value after `=`.
func (p *Parser) parseAttributeValue(textOnly bool) (ast.AttributeValue, error) {
	switch {
	case p.peek(0) == '"' || p.peek(0) == '\'':
		return p.parseQuotedValue(p.source[p.index], textOnly)

	case p.peek(0) == '{' && !textOnly:
		start := p.index
		tag, err := p.parseExpressionTag(start)
		if err != nil {
			return ast.AttributeValue{}, err
		}
		return ast.PartsValue(tag), nil

	default:
		start := p.index
		raw := p.readUntilByte(func(ch byte) bool {
			return isWhitespace(ch) || ch == '>' || ch == '/' || ch == '=' ||
				ch == '{' || ch == '}' || ch == '<'
		})
		if raw == "" {
			if err := p.error(CodeInvalidAttributeValue, p.index, p.index,
				"expected an attribute value"); err != nil {
				return ast.AttributeValue{}, err
			}
			return ast.TrueValue(), nil
		}
		text := &ast.Text{
			Span: ast.Span{Start: start, End: p.index},
			Raw:  raw,
			Data: decodeCharacterReferences(raw, true),
		}
		return ast.PartsValue(text), nil
	}
}

// parseQuotedValue parses a quoted value, optionally with embedded
// expression tags. Part spans point inside the quotes.
func (p *Parser) parseQuotedValue(quote byte, textOnly bool) (ast.AttributeValue, error) {
	p.index++ // opening quote
	var parts []ast.AttributeValuePart
	textStart := p.index

	flushText := func(end int) {
		if end > textStart {
			raw := p.source[textStart:end]
			parts = append(parts, &ast.Text{
				Span: ast.Span{Start: textStart, End: end},
				Raw:  raw,
				Data: decodeCharacterReferences(raw, true),
			})
		}
	}

	for !p.eof() {
		ch := p.peek(0)
		if ch == quote {
			flushText(p.index)
			p.index++
			return ast.AttributeValue{Parts: partsOrEmptyText(parts, textStart)}, nil
		}
		if ch == '{' && !textOnly {
			flushText(p.index)
			tag, err := p.parseExpressionTag(p.index)
			if err != nil {
				return ast.AttributeValue{}, err
			}
			parts = append(parts, tag)
			textStart = p.index
			continue
		}
		p.index++
	}

	flushText(p.index)
	if err := p.error(CodeUnexpectedEOF, p.index, p.index,
		"unexpected end of input in attribute value"); err != nil {
		return ast.AttributeValue{}, err
	}
	return ast.AttributeValue{Parts: partsOrEmptyText(parts, textStart)}, nil
}

// partsOrEmptyText ensures an empty quoted value `""` still carries a
// zero-length text part.
func partsOrEmptyText(parts []ast.AttributeValuePart, at int) []ast.AttributeValuePart {
	if len(parts) > 0 {
		return parts
	}
	return []ast.AttributeValuePart{&ast.Text{
		Span: ast.Span{Start: at, End: at},
		Raw:  "",
		Data: "",
	}}
}
