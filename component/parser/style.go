package parser

import (
	"regexp"
	"strings"

	"github.com/dhamidi/velo/component/ast"
)

// The style parser is a small recursive descent over the inner range of the
// `<style>` element. The parser's region limit is set to the content end
// while it runs, so the cursor helpers stop at `</style>`.

// readCSSBody reads rules and at-rules until the region end.
func (p *Parser) readCSSBody() ([]ast.StyleSheetChild, error) {
	children := []ast.StyleSheetChild{}
	for {
		p.allowCommentOrWhitespace()
		if p.eof() {
			return children, nil
		}
		if p.peek(0) == '@' {
			atrule, err := p.readAtRule()
			if err != nil {
				return nil, err
			}
			if atrule == nil {
				return children, nil
			}
			children = append(children, atrule)
		} else {
			rule, err := p.readCSSRule()
			if err != nil {
				return nil, err
			}
			if rule == nil {
				return children, nil
			}
			children = append(children, rule)
		}
	}
}

var cssIdentStart = regexp.MustCompile(`^-?[a-zA-Z_\x{00A0}-\x{10FFFF}]`)

// readCSSIdentifier reads a CSS identifier including escapes.
func (p *Parser) readCSSIdentifier() (string, error) {
	start := p.index
	if !cssIdentStart.MatchString(p.source[p.index:p.limit]) {
		if err := p.error(CodeExpectedToken, p.index, p.index, "expected an identifier"); err != nil {
			return "", err
		}
	}
	for !p.eof() {
		ch := p.peek(0)
		if isIdentByte(ch) || ch == '-' || ch >= 0x80 {
			p.index++
			continue
		}
		if ch == '\\' && p.index+1 < p.limit {
			p.index += 2
			continue
		}
		break
	}
	return p.source[start:p.index], nil
}

// readAtRule parses `@name prelude (; | { body })`.
func (p *Parser) readAtRule() (*ast.CSSAtrule, error) {
	start := p.index
	p.index++ // `@`

	name, err := p.readCSSIdentifier()
	if err != nil {
		return nil, err
	}

	prelude, err := p.readCSSValue()
	if err != nil {
		return nil, err
	}

	var block *ast.CSSBlock
	if p.peek(0) == '{' {
		block, err = p.readCSSBlock()
		if err != nil {
			return nil, err
		}
	} else if err := p.eatRequired(";"); err != nil {
		return nil, err
	}

	return &ast.CSSAtrule{
		Span:    ast.Span{Start: start, End: p.index},
		Name:    name,
		Prelude: prelude,
		Block:   block,
	}, nil
}

// readCSSRule parses `selectors { body }`.
func (p *Parser) readCSSRule() (*ast.CSSRule, error) {
	start := p.index
	prelude, err := p.readSelectorList(false)
	if err != nil {
		return nil, err
	}
	if prelude == nil {
		return nil, nil
	}
	block, err := p.readCSSBlock()
	if err != nil {
		return nil, err
	}
	return &ast.CSSRule{
		Span:    ast.Span{Start: start, End: p.index},
		Prelude: prelude,
		Block:   block,
	}, nil
}

// readSelectorList parses comma-separated complex selectors, up to `{` (or
// `)` inside a pseudo-class).
func (p *Parser) readSelectorList(insidePseudoClass bool) (*ast.SelectorList, error) {
	children := []*ast.ComplexSelector{}

	p.allowCommentOrWhitespace()
	start := p.index

	for !p.eof() {
		selector, err := p.readComplexSelector(insidePseudoClass)
		if err != nil {
			return nil, err
		}
		if selector == nil {
			return nil, nil
		}
		children = append(children, selector)
		end := p.index

		p.allowCommentOrWhitespace()

		if insidePseudoClass && p.peek(0) == ')' {
			return &ast.SelectorList{Span: ast.Span{Start: start, End: end}, Children: children}, nil
		}
		if !insidePseudoClass && p.peek(0) == '{' {
			return &ast.SelectorList{Span: ast.Span{Start: start, End: end}, Children: children}, nil
		}

		if !p.eat(",") {
			if err := p.error(CodeExpectedToken, p.index, p.index, "expected ','"); err != nil {
				return nil, err
			}
			return &ast.SelectorList{Span: ast.Span{Start: start, End: end}, Children: children}, nil
		}
		p.allowCommentOrWhitespace()
	}

	if err := p.error(CodeUnexpectedEOF, p.limit, p.limit, "unexpected end of input"); err != nil {
		return nil, err
	}
	return nil, nil
}

var (
	regexNth        = regexp.MustCompile(`^(?:even|odd|[+-]?\d+(?:n(?:\s*[+-]\s*\d+)?)?|[+-]?n(?:\s*[+-]\s*\d+)?)`)
	regexPercentage = regexp.MustCompile(`^\d+(?:\.\d+)?%`)
)

// readComplexSelector parses one complex selector: compound selectors
// joined by combinators.
func (p *Parser) readComplexSelector(insidePseudoClass bool) (*ast.ComplexSelector, error) {
	listStart := p.index
	var children []*ast.RelativeSelector

	relative := &ast.RelativeSelector{Span: ast.Span{Start: p.index}}

	atListEnd := func() bool {
		if p.eof() || p.peek(0) == ',' {
			return true
		}
		if insidePseudoClass {
			return p.peek(0) == ')'
		}
		return p.peek(0) == '{'
	}

	for !p.eof() {
		start := p.index

		simple, err := p.readSimpleSelector(insidePseudoClass, start)
		if err != nil {
			return nil, err
		}
		if simple != nil {
			relative.Selectors = append(relative.Selectors, simple)
		}
		madeProgress := p.index > start

		index := p.index
		p.allowCommentOrWhitespace()

		if atListEnd() {
			p.index = index
			relative.End = index
			children = append(children, relative)
			return &ast.ComplexSelector{
				Span:     ast.Span{Start: listStart, End: index},
				Children: children,
			}, nil
		}

		p.index = index
		combinator := p.readCombinator()
		if combinator == nil && !madeProgress {
			// Neither a simple selector nor a combinator: bail out rather
			// than loop on the offending byte.
			if err := p.error(CodeInvalidCSSSelector, p.index, p.index,
				"invalid selector"); err != nil {
				return nil, err
			}
			return nil, nil
		}
		if combinator != nil {
			if len(relative.Selectors) > 0 {
				relative.End = index
				children = append(children, relative)
			}
			relative = &ast.RelativeSelector{
				Span:       ast.Span{Start: combinator.Start},
				Combinator: combinator,
			}
			p.allowWhitespace()
			if atListEnd() {
				if err := p.error(CodeInvalidCSSSelector, p.index, p.index,
					"invalid selector"); err != nil {
					return nil, err
				}
				return nil, nil
			}
		}
	}

	if err := p.error(CodeUnexpectedEOF, p.limit, p.limit, "unexpected end of input"); err != nil {
		return nil, err
	}
	return nil, nil
}

// readSimpleSelector parses a single simple selector at start, or returns
// nil when the cursor sits on a combinator.
func (p *Parser) readSimpleSelector(insidePseudoClass bool, start int) (ast.SimpleSelector, error) {
	switch {
	case p.eat("&"):
		return &ast.NestingSelector{Span: ast.Span{Start: start, End: p.index}, Name: "&"}, nil

	case p.eat("*"):
		name := "*"
		if p.eat("|") {
			n, err := p.readCSSIdentifier()
			if err != nil {
				return nil, err
			}
			name = n
		}
		return &ast.TypeSelector{Span: ast.Span{Start: start, End: p.index}, Name: name}, nil

	case p.eat("#"):
		name, err := p.readCSSIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.IDSelector{Span: ast.Span{Start: start, End: p.index}, Name: name}, nil

	case p.eat("."):
		name, err := p.readCSSIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.ClassSelector{Span: ast.Span{Start: start, End: p.index}, Name: name}, nil

	case p.eat("::"):
		name, err := p.readCSSIdentifier()
		if err != nil {
			return nil, err
		}
		selector := &ast.PseudoElementSelector{Span: ast.Span{Start: start, End: p.index}, Name: name}
		// Legacy functional pseudo-elements parse and discard their args.
		if p.eat("(") {
			if _, err := p.readSelectorList(true); err != nil {
				return nil, err
			}
			if err := p.eatRequired(")"); err != nil {
				return nil, err
			}
			selector.End = p.index
		}
		return selector, nil

	case p.eat(":"):
		name, err := p.readCSSIdentifier()
		if err != nil {
			return nil, err
		}
		var args *ast.SelectorList
		if p.eat("(") {
			args, err = p.readSelectorList(true)
			if err != nil {
				return nil, err
			}
			if err := p.eatRequired(")"); err != nil {
				return nil, err
			}
		}
		return &ast.PseudoClassSelector{
			Span: ast.Span{Start: start, End: p.index},
			Name: name,
			Args: args,
		}, nil

	case p.eat("["):
		p.allowWhitespace()
		name, err := p.readCSSIdentifier()
		if err != nil {
			return nil, err
		}
		p.allowWhitespace()

		matcher := p.readAttributeMatcher()
		var value *string
		if matcher != nil {
			p.allowWhitespace()
			v, err := p.readAttributeSelectorValue()
			if err != nil {
				return nil, err
			}
			value = &v
		}

		p.allowWhitespace()
		flags := p.readAttributeFlags()
		p.allowWhitespace()
		if err := p.eatRequired("]"); err != nil {
			return nil, err
		}
		return &ast.AttributeSelector{
			Span:    ast.Span{Start: start, End: p.index},
			Name:    name,
			Matcher: matcher,
			Value:   value,
			Flags:   flags,
		}, nil
	}

	rest := p.source[p.index:p.limit]
	if insidePseudoClass {
		if m := regexNth.FindString(rest); m != "" && nthBoundary(rest, len(m)) {
			p.index += len(m)
			return &ast.Nth{Span: ast.Span{Start: start, End: p.index}, Value: m}, nil
		}
	}
	if m := regexPercentage.FindString(rest); m != "" {
		p.index += len(m)
		return &ast.Percentage{Span: ast.Span{Start: start, End: p.index}, Value: m}, nil
	}

	if p.matchCombinator() {
		return nil, nil
	}

	name, err := p.readCSSIdentifier()
	if err != nil {
		return nil, err
	}
	if p.eat("|") {
		name, err = p.readCSSIdentifier()
		if err != nil {
			return nil, err
		}
	}
	return &ast.TypeSelector{Span: ast.Span{Start: start, End: p.index}, Name: name}, nil
}

// nthBoundary checks that an nth match ends at a sensible boundary so type
// selectors like `n` inside :not() are not misread.
func nthBoundary(rest string, at int) bool {
	if at >= len(rest) {
		return true
	}
	ch := rest[at]
	return ch == ')' || ch == ',' || isWhitespace(ch)
}

func (p *Parser) matchCombinator() bool {
	switch p.peek(0) {
	case '+', '~', '>':
		return true
	case '|':
		return p.peek(1) == '|'
	}
	return false
}

// readCombinator reads an explicit or descendant (whitespace) combinator.
func (p *Parser) readCombinator() *ast.CSSCombinator {
	start := p.index
	p.allowWhitespace()

	index := p.index
	var name string
	switch p.peek(0) {
	case '+', '~', '>':
		name = string(p.peek(0))
		p.index++
	case '|':
		if p.peek(1) == '|' {
			name = "||"
			p.index += 2
		}
	}

	if name != "" {
		end := p.index
		p.allowWhitespace()
		return &ast.CSSCombinator{Span: ast.Span{Start: index, End: end}, Name: name}
	}

	if p.index != start {
		return &ast.CSSCombinator{Span: ast.Span{Start: start, End: p.index}, Name: " "}
	}
	return nil
}

func (p *Parser) readAttributeMatcher() *string {
	for _, m := range []string{"~=", "^=", "$=", "*=", "|=", "="} {
		if p.eat(m) {
			matcher := m
			return &matcher
		}
	}
	return nil
}

// readAttributeSelectorValue reads a (possibly quoted) attribute selector
// value.
func (p *Parser) readAttributeSelectorValue() (string, error) {
	var quote byte
	if p.eat(`"`) {
		quote = '"'
	} else if p.eat("'") {
		quote = '\''
	}

	var value strings.Builder
	for !p.eof() {
		ch := p.peek(0)
		if ch == '\\' && p.index+1 < p.limit {
			value.WriteByte('\\')
			value.WriteByte(p.source[p.index+1])
			p.index += 2
			continue
		}
		if quote != 0 {
			if ch == quote {
				p.index++
				return strings.TrimSpace(value.String()), nil
			}
		} else if isWhitespace(ch) || ch == ']' {
			return strings.TrimSpace(value.String()), nil
		}
		value.WriteByte(ch)
		p.index++
	}
	if err := p.error(CodeUnexpectedEOF, p.limit, p.limit, "unexpected end of input"); err != nil {
		return "", err
	}
	return value.String(), nil
}

func (p *Parser) readAttributeFlags() *string {
	start := p.index
	for !p.eof() && isIdentByte(p.peek(0)) {
		p.index++
	}
	if p.index == start {
		return nil
	}
	flags := p.source[start:p.index]
	return &flags
}

// readCSSBlock parses `{ declarations | rules | at-rules }`.
func (p *Parser) readCSSBlock() (*ast.CSSBlock, error) {
	start := p.index
	if err := p.eatRequired("{"); err != nil {
		return nil, err
	}

	children := []ast.CSSBlockChild{}
	for !p.eof() {
		p.allowCommentOrWhitespace()
		if p.peek(0) == '}' || p.eof() {
			break
		}
		child, err := p.readCSSBlockItem()
		if err != nil {
			return nil, err
		}
		if child == nil {
			break
		}
		children = append(children, child)
	}

	if err := p.eatRequired("}"); err != nil {
		return nil, err
	}
	return &ast.CSSBlock{Span: ast.Span{Start: start, End: p.index}, Children: children}, nil
}

// readCSSBlockItem disambiguates declarations from nested rules by scanning
// ahead to the next structural character.
func (p *Parser) readCSSBlockItem() (ast.CSSBlockChild, error) {
	if p.peek(0) == '@' {
		return p.readAtRule()
	}

	start := p.index
	if _, err := p.readCSSValue(); err != nil {
		return nil, err
	}
	next := p.peek(0)
	p.index = start

	if next == '{' {
		return p.readCSSRule()
	}
	return p.readCSSDeclaration()
}

// readCSSDeclaration parses `property: value` with `!important` kept in the
// raw value.
func (p *Parser) readCSSDeclaration() (*ast.CSSDeclaration, error) {
	start := p.index

	property := p.readUntilByte(func(ch byte) bool {
		return isWhitespace(ch) || ch == ':'
	})
	p.allowWhitespace()
	if err := p.eatRequired(":"); err != nil {
		return nil, err
	}
	p.allowWhitespace()

	value, err := p.readCSSValue()
	if err != nil {
		return nil, err
	}
	if value == "" && !strings.HasPrefix(property, "--") {
		if err := p.error(CodeEmptyCSSDeclaration, start, p.index,
			"declaration cannot be empty"); err != nil {
			return nil, err
		}
	}

	end := p.index
	if p.peek(0) != '}' {
		if err := p.eatRequired(";"); err != nil {
			return nil, err
		}
	}

	return &ast.CSSDeclaration{
		Span:     ast.Span{Start: start, End: end},
		Property: property,
		Value:    value,
	}, nil
}

// readCSSValue reads raw value text up to an unbalanced `;`, `{` or `}`,
// respecting strings and url(...).
func (p *Parser) readCSSValue() (string, error) {
	var value strings.Builder
	var quote byte
	inURL := false

	for !p.eof() {
		ch := p.peek(0)
		switch {
		case ch == '\\' && p.index+1 < p.limit:
			value.WriteByte('\\')
			value.WriteByte(p.source[p.index+1])
			p.index += 2
			continue
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == ')':
			inURL = false
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(' && strings.HasSuffix(value.String(), "url"):
			inURL = true
		case (ch == ';' || ch == '{' || ch == '}') && !inURL:
			return strings.TrimSpace(value.String()), nil
		}
		value.WriteByte(ch)
		p.index++
	}

	if err := p.error(CodeUnexpectedEOF, p.limit, p.limit, "unexpected end of input"); err != nil {
		return "", err
	}
	return strings.TrimSpace(value.String()), nil
}
