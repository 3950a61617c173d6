package parser

import (
	"strings"

	"github.com/dhamidi/velo/component/ast"
	"github.com/dhamidi/velo/component/estree"
)

type openElement struct {
	name          string
	shadowRoot    bool
	regularOrComp bool
}

func isTagNameByte(ch byte) bool {
	return !(isWhitespace(ch) || ch == '/' || ch == '>')
}

// readTagName consumes a tag name (everything up to whitespace, `/` or `>`).
func (p *Parser) readTagName() string {
	return p.readUntilByte(func(ch byte) bool { return !isTagNameByte(ch) })
}

// peekTagNameAt reads the tag name starting at i without moving the cursor.
func (p *Parser) peekTagNameAt(i int) string {
	j := i
	for j < len(p.source) && isTagNameByte(p.source[j]) {
		j++
	}
	return p.source[i:j]
}

// scanCloseTag reads `</name ... >` starting at `<`, returning the tag name
// and the offset just past `>`. The cursor does not move.
func (p *Parser) scanCloseTag() (name string, end int, ok bool) {
	i := p.index + 2 // past "</"
	nameStart := i
	for i < len(p.source) && isTagNameByte(p.source[i]) {
		i++
	}
	name = p.source[nameStart:i]
	for i < len(p.source) && isWhitespace(p.source[i]) {
		i++
	}
	if i >= len(p.source) || p.source[i] != '>' {
		return name, i, false
	}
	return name, i + 1, true
}

// parseAngle handles `<...`: comments, stray closing tags, and open tags.
// Closing tags belonging to an open element never reach this function; the
// element's own loop consumes them.
func (p *Parser) parseAngle() (ast.FragmentNode, error) {
	start := p.index

	if p.startsWith("<!--") {
		return p.parseComment(start)
	}

	if p.startsWith("</") {
		name, end, ok := p.scanCloseTag()
		if !ok {
			if err := p.error(CodeUnexpectedEOF, start, len(p.source), "unexpected end of input in closing tag"); err != nil {
				return nil, err
			}
			p.index = len(p.source)
			return nil, nil
		}
		if err := p.error(CodeInvalidClosingTag, start, end,
			"`</"+name+">` attempted to close an element that was not open"); err != nil {
			return nil, err
		}
		p.index = end
		return nil, nil
	}

	return p.parseOpenTag(start)
}

func (p *Parser) parseComment(start int) (ast.FragmentNode, error) {
	p.index += len("<!--")
	data := p.readUntilString("-->")
	if !p.eat("-->") {
		if err := p.error(CodeExpectedToken, p.index, p.index, "expected '-->'"); err != nil {
			return nil, err
		}
	}
	return &ast.Comment{Span: ast.Span{Start: start, End: p.index}, Data: data}, nil
}

func (p *Parser) parseOpenTag(start int) (ast.FragmentNode, error) {
	p.index++ // `<`
	name := p.readTagName()

	if name == "" {
		// Not a tag after all; the `<` is literal text.
		p.index = start + 1
		return &ast.Text{
			Span: ast.Span{Start: start, End: start + 1},
			Raw:  "<",
			Data: "<",
		}, nil
	}

	if strings.HasPrefix(name, "svelte:") && !metaTags[name] {
		if err := p.error(CodeInvalidSvelteTag, start+1, start+1+len(name),
			"`<"+name+">` is not a valid svelte: tag"); err != nil {
			return nil, err
		}
	}

	if !regexValidElementName.MatchString(name) && !isComponentName(name) {
		if err := p.error(CodeInvalidTagName, start+1, start+1+len(name),
			"`<"+name+">` is not a valid element name"); err != nil {
			return nil, err
		}
	}

	if rootOnlyMetaTags[name] {
		if p.metaTags[name] {
			if err := p.error(CodeDuplicateSvelteMeta, start, p.index,
				"`<"+name+">` can only appear once in a component"); err != nil {
				return nil, err
			}
		}
		if len(p.openStack) > 0 || p.blockDepth > 0 {
			if err := p.error(CodeInvalidSvelteTagPlacement, start, p.index,
				"`<"+name+">` tags cannot be inside elements or blocks"); err != nil {
				return nil, err
			}
		}
		p.metaTags[name] = true
	}

	p.allowWhitespace()

	isTopLevelScriptOrStyle := (name == "script" || name == "style") &&
		len(p.openStack) == 0 && p.blockDepth == 0

	attributes, err := p.parseAttributes(isTopLevelScriptOrStyle)
	if err != nil {
		return nil, err
	}
	p.allowWhitespace()

	if isTopLevelScriptOrStyle {
		if err := p.eatRequired(">"); err != nil {
			return nil, err
		}
		if name == "script" {
			return nil, p.readScript(start, attributes)
		}
		return nil, p.readStyle(start, attributes)
	}

	var thisExpression *estree.Node
	if name == "svelte:component" || name == "svelte:element" {
		thisExpression, err = p.extractThisAttribute(&attributes, name, start)
		if err != nil {
			return nil, err
		}
	}

	selfClosing := p.eat("/")
	if err := p.eatRequired(">"); err != nil {
		return nil, err
	}

	if selfClosing || isVoid(name) {
		return p.makeElement(name, start, p.index, attributes, &ast.Fragment{}, thisExpression), nil
	}

	switch name {
	case "textarea":
		return p.parseTextareaElement(name, start, attributes)
	case "script", "style":
		// Nested script/style content is preserved as a raw text child.
		contentStart := p.index
		data := p.readRawUntilCloseTag(name)
		contentEnd := contentStart + len(data)
		text := &ast.Text{
			Span: ast.Span{Start: contentStart, End: contentEnd},
			Raw:  data,
			Data: data,
		}
		return p.makeElement(name, start, p.index, attributes,
			&ast.Fragment{Nodes: []ast.FragmentNode{text}}, thisExpression), nil
	}

	return p.parseElementBody(name, start, attributes, thisExpression)
}

// parseElementBody parses children until the element's closing tag, an
// implicit close, or EOF, then builds the element node.
func (p *Parser) parseElementBody(name string, start int, attributes []ast.AttributeNode, thisExpression *estree.Node) (ast.FragmentNode, error) {
	p.openStack = append(p.openStack, openElement{
		name:          name,
		shadowRoot:    hasAttributeNamed(attributes, "shadowrootmode"),
		regularOrComp: !strings.HasPrefix(name, "svelte:"),
	})

	terminated := func() bool {
		if p.startsWith("</") {
			return true
		}
		if p.peek(0) == '<' {
			next := p.peekTagNameAt(p.index + 1)
			if next != "" && closingTagOmitted(name, next) {
				return true
			}
		}
		return false
	}

	var children []ast.FragmentNode
	end := -1

	for end < 0 {
		more, err := p.parseFragmentNodes(terminated)
		if err != nil {
			return nil, err
		}
		children = append(children, more...)

		switch {
		case p.eof():
			if err := p.error(CodeUnclosedElement, start, len(p.source),
				"`<"+name+">` was left open"); err != nil {
				return nil, err
			}
			end = len(p.source)

		case p.startsWith("</"):
			closeStart := p.index
			closeName, closeEnd, ok := p.scanCloseTag()
			if !ok {
				if err := p.error(CodeUnexpectedEOF, closeStart, len(p.source),
					"unexpected end of input in closing tag"); err != nil {
					return nil, err
				}
				p.index = len(p.source)
				end = len(p.source)
				break
			}
			switch {
			case closeName == name:
				p.index = closeEnd
				end = closeEnd
			case isVoid(closeName):
				if err := p.error(CodeVoidElementContent, closeStart, closeEnd,
					"`</"+closeName+">` is a void element and cannot have content"); err != nil {
					return nil, err
				}
				p.index = closeEnd
			case p.stackContainsOpen(closeName):
				// An ancestor's closing tag: this element is implicitly
				// closed at the `<` of that tag, which stays unconsumed.
				end = closeStart
			default:
				if p.lastClosed != nil && p.lastClosed.tag == closeName {
					if err := p.error(CodeClosingTagAutoclosed, closeStart, closeEnd,
						"`</"+closeName+">` attempted to close an element that was already automatically closed by `<"+p.lastClosed.reason+">`"); err != nil {
						return nil, err
					}
				} else if err := p.error(CodeInvalidClosingTag, closeStart, closeEnd,
					"`</"+closeName+">` attempted to close an element that was not open"); err != nil {
					return nil, err
				}
				p.index = closeEnd
			}

		default:
			// Auto-closed by a following open tag.
			p.lastClosed = &autoClosedTag{
				tag:    name,
				reason: p.peekTagNameAt(p.index + 1),
				depth:  len(p.openStack) - 1,
			}
			end = p.index
		}
	}

	p.openStack = p.openStack[:len(p.openStack)-1]
	if p.lastClosed != nil && len(p.openStack) < p.lastClosed.depth {
		p.lastClosed = nil
	}

	return p.makeElement(name, start, end, attributes, &ast.Fragment{Nodes: children}, thisExpression), nil
}

func (p *Parser) stackContainsOpen(name string) bool {
	for _, open := range p.openStack[:len(p.openStack)-1] {
		if open.name == name {
			return true
		}
	}
	return false
}

// parseTextareaElement reads textarea content as a text/expression sequence
// up to the closing tag.
func (p *Parser) parseTextareaElement(name string, start int, attributes []ast.AttributeNode) (ast.FragmentNode, error) {
	var children []ast.FragmentNode
	for !p.eof() && !p.atCloseTagOf(name) {
		if p.peek(0) == '{' {
			tag, err := p.parseExpressionTag(p.index)
			if err != nil {
				return nil, err
			}
			children = append(children, tag)
			continue
		}
		textStart := p.index
		raw := p.readUntilByte(func(ch byte) bool { return ch == '{' || ch == '<' })
		if raw == "" && p.peek(0) == '<' && !p.atCloseTagOf(name) {
			p.index++
			raw = "<"
		}
		if raw != "" {
			children = append(children, &ast.Text{
				Span: ast.Span{Start: textStart, End: p.index},
				Raw:  raw,
				Data: decodeCharacterReferences(raw, false),
			})
		}
	}
	p.eatCloseTagOf(name)
	return p.makeElement(name, start, p.index, attributes, &ast.Fragment{Nodes: children}, nil), nil
}

// atCloseTagOf reports whether the cursor is at `</name` (case-insensitive)
// followed by optional attribute junk and `>`.
func (p *Parser) atCloseTagOf(name string) bool {
	rest := p.source[p.index:]
	if len(rest) < 2+len(name) || rest[0] != '<' || rest[1] != '/' {
		return false
	}
	if !strings.EqualFold(rest[2:2+len(name)], name) {
		return false
	}
	i := 2 + len(name)
	if i < len(rest) && rest[i] == '>' {
		return true
	}
	if i < len(rest) && isWhitespace(rest[i]) {
		for i < len(rest) && rest[i] != '>' {
			i++
		}
		return i < len(rest)
	}
	return false
}

func (p *Parser) eatCloseTagOf(name string) {
	if !p.atCloseTagOf(name) {
		return
	}
	p.index += 2 + len(name)
	for p.index < len(p.source) && p.source[p.index] != '>' {
		p.index++
	}
	if p.index < len(p.source) {
		p.index++
	}
}

// readRawUntilCloseTag consumes raw content up to `</name>` and the closing
// tag itself, returning the content.
func (p *Parser) readRawUntilCloseTag(name string) string {
	start := p.index
	for !p.eof() && !p.atCloseTagOf(name) {
		p.index++
	}
	data := p.source[start:p.index]
	p.eatCloseTagOf(name)
	return data
}

func hasAttributeNamed(attributes []ast.AttributeNode, name string) bool {
	for _, a := range attributes {
		if attr, ok := a.(*ast.Attribute); ok && attr.Name == name {
			return true
		}
	}
	return false
}

// extractThisAttribute removes the `this` attribute and returns its
// expression, for `<svelte:element>` and `<svelte:component>`.
func (p *Parser) extractThisAttribute(attributes *[]ast.AttributeNode, name string, start int) (*estree.Node, error) {
	for i, a := range *attributes {
		attr, ok := a.(*ast.Attribute)
		if !ok || attr.Name != "this" {
			continue
		}
		*attributes = append((*attributes)[:i], (*attributes)[i+1:]...)

		if attr.Value.True {
			if err := p.error(CodeMissingThis, start, p.index,
				"`<"+name+">` requires a 'this' attribute with a value"); err != nil {
				return nil, err
			}
			return nil, nil
		}
		if len(attr.Value.Parts) == 1 {
			switch part := attr.Value.Parts[0].(type) {
			case *ast.ExpressionTag:
				return part.Expression, nil
			case *ast.Text:
				if name == "svelte:element" {
					lit := estree.NewNode("Literal", part.Start, part.End)
					lit.Set("value", part.Data)
					lit.Set("raw", "'"+part.Raw+"'")
					return lit, nil
				}
			}
		}
		if err := p.error(CodeExpectedExpression, start, p.index,
			"`<"+name+">` 'this' attribute must be an expression"); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := p.error(CodeMissingThis, start, p.index,
		"`<"+name+">` requires a 'this' attribute"); err != nil {
		return nil, err
	}
	return nil, nil
}

// parentIsHead reports whether the nearest element ancestor is svelte:head.
func (p *Parser) parentIsHead() bool {
	for i := len(p.openStack) - 1; i >= 0; i-- {
		open := p.openStack[i]
		if open.name == "svelte:head" {
			return true
		}
		if open.regularOrComp {
			return false
		}
	}
	return false
}

// parentIsShadowRootTemplate reports whether any open element carries a
// shadowrootmode attribute.
func (p *Parser) parentIsShadowRootTemplate() bool {
	for _, open := range p.openStack {
		if open.shadowRoot {
			return true
		}
	}
	return false
}

// makeElement classifies the tag name and builds the matching node. A
// `<svelte:options>` at valid placement is interpreted and lifted onto the
// root instead of staying in the fragment.
func (p *Parser) makeElement(name string, start, end int, attributes []ast.AttributeNode, fragment *ast.Fragment, thisExpression *estree.Node) ast.FragmentNode {
	span := ast.Span{Start: start, End: end}
	base := ast.BaseElement{Span: span, Name: name, Attributes: attributes, Fragment: fragment}

	switch name {
	case "svelte:head":
		return &ast.SvelteHead{BaseElement: base}
	case "svelte:options":
		if len(p.openStack) == 0 && p.blockDepth == 0 && p.options == nil {
			p.options = p.interpretOptions(span, attributes)
			return nil
		}
		return &ast.SvelteOptionsRaw{BaseElement: base}
	case "svelte:window":
		return &ast.SvelteWindow{BaseElement: base}
	case "svelte:document":
		return &ast.SvelteDocument{BaseElement: base}
	case "svelte:body":
		return &ast.SvelteBody{BaseElement: base}
	case "svelte:element":
		if thisExpression == nil {
			thisExpression = estree.EmptyIdentifier(start)
		}
		return &ast.SvelteElement{BaseElement: base, Tag: thisExpression}
	case "svelte:component":
		if thisExpression == nil {
			thisExpression = estree.EmptyIdentifier(start)
		}
		return &ast.SvelteComponent{BaseElement: base, Expression: thisExpression}
	case "svelte:self":
		return &ast.SvelteSelf{BaseElement: base}
	case "svelte:fragment":
		return &ast.SvelteFragment{BaseElement: base}
	}

	if isComponentName(name) {
		return &ast.Component{BaseElement: base}
	}
	if name == "title" && p.parentIsHead() {
		return &ast.TitleElement{BaseElement: base}
	}
	if name == "slot" && !p.parentIsShadowRootTemplate() {
		return &ast.SlotElement{BaseElement: base}
	}
	return &ast.RegularElement{BaseElement: base}
}
