package parser

import (
	"strings"

	"github.com/dhamidi/velo/component/ast"
	"github.com/dhamidi/velo/component/estree"
)

// parseBrace handles `{...}`: expression tags, `{@...}` tags and `{#...}`
// blocks. Block continuations (`{:`) and closings (`{/`) reaching this
// function are outside any block and therefore invalid.
func (p *Parser) parseBrace() (ast.FragmentNode, error) {
	switch p.peek(1) {
	case '#':
		return p.parseBlock()
	case '@':
		return p.parseSpecialTag()
	case ':':
		if err := p.error(CodeBlockArmOutsideBlock, p.index, p.index+2,
			"block continuation outside a block"); err != nil {
			return nil, err
		}
		return p.demoteBraceToText(), nil
	case '/':
		if err := p.error(CodeInvalidBlockPlacement, p.index, p.index+2,
			"block closing outside a block"); err != nil {
			return nil, err
		}
		return p.demoteBraceToText(), nil
	default:
		return p.parseExpressionTag(p.index)
	}
}

// demoteBraceToText consumes the `{...}` group (or the lone brace) as text,
// the loose-mode recovery for unknown tag shapes.
func (p *Parser) demoteBraceToText() ast.FragmentNode {
	start := p.index
	end := findMatchingBrace(p.source, p.index+1)
	if end < 0 {
		p.index = len(p.source)
	} else {
		p.index = end + 1
	}
	raw := p.source[start:p.index]
	return &ast.Text{
		Span: ast.Span{Start: start, End: p.index},
		Raw:  raw,
		Data: decodeCharacterReferences(raw, false),
	}
}

// closeBraceFor returns the offset of the `}` closing the brace group that
// was opened just before p.index, or an unexpected_eof error.
func (p *Parser) closeBraceFor(openIndex int) (int, error) {
	end := findMatchingBrace(p.source, p.index)
	if end < 0 {
		if err := p.error(CodeUnexpectedEOF, openIndex, len(p.source), "unexpected end of input"); err != nil {
			return 0, err
		}
		return len(p.source), nil
	}
	return end, nil
}

// parseExpressionTag parses `{expression}` starting at the `{`.
func (p *Parser) parseExpressionTag(start int) (*ast.ExpressionTag, error) {
	p.index++ // `{`
	p.allowWhitespace()

	closeBrace, err := p.closeBraceFor(start)
	if err != nil {
		return nil, err
	}

	expression, end, err := p.expression(p.index, closeBrace, estree.ContextTemplateExpression)
	if err != nil {
		return nil, err
	}
	p.index = end
	p.allowCommentOrWhitespace()
	if p.index < closeBrace {
		if err := p.error(CodeExpectedToken, p.index, closeBrace, "expected '}'"); err != nil {
			return nil, err
		}
	}
	p.index = closeBrace
	p.eat("}")

	return &ast.ExpressionTag{
		Span:       ast.Span{Start: start, End: p.index},
		Expression: expression,
	}, nil
}

// parseSpecialTag parses `{@html ...}`, `{@const ...}`, `{@debug ...}` and
// `{@render ...}`.
func (p *Parser) parseSpecialTag() (ast.FragmentNode, error) {
	start := p.index
	p.index += 2 // `{@`
	keyword := p.readUntilByte(func(ch byte) bool {
		return !(ch >= 'a' && ch <= 'z')
	})

	switch keyword {
	case "html":
		return p.parseHtmlTag(start)
	case "const":
		return p.parseConstTag(start)
	case "debug":
		return p.parseDebugTag(start)
	case "render":
		return p.parseRenderTag(start)
	default:
		if err := p.error(CodeExpectedToken, start, p.index,
			"expected 'html', 'const', 'debug' or 'render'"); err != nil {
			return nil, err
		}
		p.index = start
		return p.demoteBraceToText(), nil
	}
}

func (p *Parser) parseHtmlTag(start int) (ast.FragmentNode, error) {
	if err := p.requireWhitespace(); err != nil {
		return nil, err
	}
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
	return &ast.HtmlTag{
		Span:       ast.Span{Start: start, End: p.index},
		Expression: expression,
	}, nil
}

func (p *Parser) parseConstTag(start int) (ast.FragmentNode, error) {
	// The declaration is parsed from the `const` keyword itself, so the
	// resulting node covers `const x = ...`.
	constStart := start + 2
	if err := p.requireWhitespace(); err != nil {
		return nil, err
	}
	closeBrace, err := p.closeBraceFor(start)
	if err != nil {
		return nil, err
	}
	declaration, end, err := p.variableDeclaration(constStart, closeBrace)
	if err != nil {
		return nil, err
	}

	if declaration != nil {
		kind, _ := declaration.Get("kind").(string)
		declarations, _ := declaration.Get("declarations").([]*estree.Node)
		if kind != "const" || len(declarations) != 1 {
			if err := p.error(CodeInvalidConstDeclaration, start, closeBrace+1,
				"{@const ...} must consist of a single const declaration"); err != nil {
				return nil, err
			}
		}
	}

	p.index = end
	p.allowWhitespace()
	p.index = closeBrace
	p.eat("}")
	return &ast.ConstTag{
		Span:        ast.Span{Start: start, End: p.index},
		Declaration: declaration,
	}, nil
}

func (p *Parser) parseDebugTag(start int) (ast.FragmentNode, error) {
	p.allowWhitespace()
	identifiers := []*estree.Node{}

	if !p.startsWith("}") {
		for {
			p.allowWhitespace()
			identStart := p.index
			name := p.readUntilByte(func(ch byte) bool {
				return !(isIdentByte(ch))
			})
			if name == "" {
				if err := p.error(CodeExpectedToken, p.index, p.index, "expected an identifier"); err != nil {
					return nil, err
				}
				break
			}
			identifiers = append(identifiers, estree.Identifier(name, identStart, p.index))
			p.allowWhitespace()
			if !p.eat(",") {
				break
			}
		}
	}

	if err := p.eatRequired("}"); err != nil {
		return nil, err
	}
	return &ast.DebugTag{
		Span:        ast.Span{Start: start, End: p.index},
		Identifiers: identifiers,
	}, nil
}

func isIdentByte(ch byte) bool {
	return ch == '$' || ch == '_' || (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func (p *Parser) parseRenderTag(start int) (ast.FragmentNode, error) {
	if err := p.requireWhitespace(); err != nil {
		return nil, err
	}
	closeBrace, err := p.closeBraceFor(start)
	if err != nil {
		return nil, err
	}
	exprStart := p.index
	expression, end, err := p.expression(p.index, closeBrace, estree.ContextTemplateExpression)
	if err != nil {
		return nil, err
	}

	if expression != nil && !isCallLike(expression) {
		if err := p.error(CodeInvalidRenderExpression, exprStart, end,
			"`{@render ...}` tags can only contain call expressions"); err != nil {
			return nil, err
		}
	}

	p.index = end
	p.allowWhitespace()
	p.index = closeBrace
	p.eat("}")
	return &ast.RenderTag{
		Span:       ast.Span{Start: start, End: p.index},
		Expression: expression,
	}, nil
}

// isCallLike accepts CallExpression and optional-chained calls.
func isCallLike(n *estree.Node) bool {
	switch n.Type() {
	case "CallExpression":
		return true
	case "ChainExpression":
		inner, ok := n.Get("expression").(*estree.Node)
		return ok && inner.Type() == "CallExpression"
	default:
		return false
	}
}

// parseBlock dispatches `{#keyword ...}` blocks.
func (p *Parser) parseBlock() (ast.FragmentNode, error) {
	p.blockDepth++
	defer func() { p.blockDepth-- }()

	start := p.index
	p.index += 2 // `{#`
	keyword := p.readUntilByte(func(ch byte) bool {
		return !(ch >= 'a' && ch <= 'z')
	})

	switch keyword {
	case "if":
		return p.parseIfBlock(start)
	case "each":
		return p.parseEachBlock(start)
	case "await":
		return p.parseAwaitBlock(start)
	case "key":
		return p.parseKeyBlock(start)
	case "snippet":
		return p.parseSnippetBlock(start)
	default:
		if err := p.error(CodeExpectedToken, start, p.index,
			"expected 'if', 'each', 'await', 'key' or 'snippet'"); err != nil {
			return nil, err
		}
		p.index = start
		return p.demoteBraceToText(), nil
	}
}

// blockTerminator stops a block fragment at `{:` or `{/`.
func blockTerminator(p *Parser) func() bool {
	return func() bool {
		return p.startsWith("{:") || p.startsWith("{/")
	}
}

// eatBlockClose consumes `{/keyword}` or records unclosed_block.
func (p *Parser) eatBlockClose(keyword string, start int) error {
	if p.eat("{/" + keyword + "}") {
		return nil
	}
	return p.error(CodeUnclosedBlock, start, p.index, "`{#"+keyword+"}` block was left open")
}

func (p *Parser) parseIfBlock(start int) (ast.FragmentNode, error) {
	if err := p.requireWhitespace(); err != nil {
		return nil, err
	}
	return p.parseIfBlockFrom(start, false)
}

// parseIfBlockFrom parses the remainder of an if (or else-if) block, with
// the cursor on the test expression.
func (p *Parser) parseIfBlockFrom(start int, elseif bool) (*ast.IfBlock, error) {
	closeBrace, err := p.closeBraceFor(start)
	if err != nil {
		return nil, err
	}
	test, end, err := p.expression(p.index, closeBrace, estree.ContextTemplateExpression)
	if err != nil {
		return nil, err
	}
	p.index = end
	p.allowWhitespace()
	p.index = closeBrace
	p.eat("}")

	consequent, err := p.parseFragmentNodes(blockTerminator(p))
	if err != nil {
		return nil, err
	}

	alternate, err := p.parseIfAlternate(start)
	if err != nil {
		return nil, err
	}
	if alternate == nil {
		if err := p.eatBlockClose("if", start); err != nil {
			return nil, err
		}
	}

	return &ast.IfBlock{
		Span:       ast.Span{Start: start, End: p.index},
		Elseif:     elseif,
		Test:       test,
		Consequent: &ast.Fragment{Nodes: consequent},
		Alternate:  alternate,
	}, nil
}

// parseIfAlternate parses `{:else}` and `{:else if}` arms. An `{:else if}`
// produces a nested IfBlock with elseif=true as the alternate.
func (p *Parser) parseIfAlternate(blockStart int) (ast.IfAlternate, error) {
	if !p.startsWith("{:else") {
		return nil, nil
	}
	elseStart := p.index
	p.index += len("{:else")

	hadSpace := isWhitespace(p.peek(0))
	p.allowWhitespace()

	if hadSpace && p.eat("if") {
		if err := p.requireWhitespace(); err != nil {
			return nil, err
		}
		nested, err := p.parseIfBlockFrom(elseStart, true)
		if err != nil {
			return nil, err
		}
		return nested, nil
	}

	if err := p.eatRequired("}"); err != nil {
		return nil, err
	}
	nodes, err := p.parseFragmentNodes(blockTerminator(p))
	if err != nil {
		return nil, err
	}
	if err := p.eatBlockClose("if", blockStart); err != nil {
		return nil, err
	}
	return &ast.Fragment{Nodes: nodes}, nil
}

func (p *Parser) parseKeyBlock(start int) (ast.FragmentNode, error) {
	if err := p.requireWhitespace(); err != nil {
		return nil, err
	}
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

	nodes, err := p.parseFragmentNodes(blockTerminator(p))
	if err != nil {
		return nil, err
	}
	if err := p.eatBlockClose("key", start); err != nil {
		return nil, err
	}

	return &ast.KeyBlock{
		Span:       ast.Span{Start: start, End: p.index},
		Expression: expression,
		Fragment:   &ast.Fragment{Nodes: nodes},
	}, nil
}

func (p *Parser) parseEachBlock(start int) (ast.FragmentNode, error) {
	if err := p.requireWhitespace(); err != nil {
		return nil, err
	}
	closeBrace, err := p.closeBraceFor(start)
	if err != nil {
		return nil, err
	}

	head := p.source[p.index:closeBrace]
	asPos := findKeywordAtDepthZero(head, " as ")

	var expression, context, key *estree.Node
	var index *string

	if asPos < 0 {
		if err := p.error(CodeExpectedPattern, p.index, closeBrace,
			"expected an `as` clause"); err != nil {
			return nil, err
		}
		expression, _, err = p.expression(p.index, closeBrace, estree.ContextTemplateExpression)
		if err != nil {
			return nil, err
		}
		context = estree.EmptyIdentifier(closeBrace)
		p.index = closeBrace
	} else {
		exprLimit := p.index + asPos
		expression, _, err = p.expression(p.index, exprLimit, estree.ContextTemplateExpression)
		if err != nil {
			return nil, err
		}
		p.index = exprLimit + len(" as ")
		p.allowWhitespace()

		var ctxEnd int
		context, ctxEnd, err = p.pattern(p.index, closeBrace, estree.ContextEachContext)
		if err != nil {
			return nil, err
		}
		p.index = ctxEnd
		p.allowWhitespace()

		if p.eat(",") {
			p.allowWhitespace()
			idxStart := p.index
			name := p.readUntilByte(func(ch byte) bool { return !isIdentByte(ch) })
			if name == "" {
				if err := p.error(CodeExpectedToken, idxStart, idxStart,
					"expected an index name"); err != nil {
					return nil, err
				}
			} else {
				index = &name
			}
			p.allowWhitespace()
		}

		if p.eat("(") {
			p.allowWhitespace()
			var keyEnd int
			key, keyEnd, err = p.expression(p.index, closeBrace, estree.ContextEachKey)
			if err != nil {
				return nil, err
			}
			p.index = keyEnd
			p.allowWhitespace()
			if err := p.eatRequired(")"); err != nil {
				return nil, err
			}
			p.allowWhitespace()
		}
		p.index = closeBrace
	}
	p.eat("}")

	body, err := p.parseFragmentNodes(blockTerminator(p))
	if err != nil {
		return nil, err
	}

	var fallback *ast.Fragment
	if p.eat("{:else}") {
		nodes, err := p.parseFragmentNodes(blockTerminator(p))
		if err != nil {
			return nil, err
		}
		fallback = &ast.Fragment{Nodes: nodes}
	}

	if err := p.eatBlockClose("each", start); err != nil {
		return nil, err
	}

	return &ast.EachBlock{
		Span:       ast.Span{Start: start, End: p.index},
		Expression: expression,
		Context:    context,
		Body:       &ast.Fragment{Nodes: body},
		Fallback:   fallback,
		Index:      index,
		Key:        key,
	}, nil
}

func (p *Parser) parseAwaitBlock(start int) (ast.FragmentNode, error) {
	if err := p.requireWhitespace(); err != nil {
		return nil, err
	}
	closeBrace, err := p.closeBraceFor(start)
	if err != nil {
		return nil, err
	}

	head := p.source[p.index:closeBrace]
	thenPos := findKeywordAtDepthZero(head, " then ")
	catchPos := findKeywordAtDepthZero(head, " catch ")

	block := &ast.AwaitBlock{}

	switch {
	case thenPos >= 0:
		expression, _, err := p.expression(p.index, p.index+thenPos, estree.ContextTemplateExpression)
		if err != nil {
			return nil, err
		}
		block.Expression = expression
		patternStart := p.index + thenPos + len(" then ")
		if strings.TrimSpace(p.source[patternStart:closeBrace]) != "" {
			value, _, err := p.pattern(patternStart, closeBrace, estree.ContextTemplateExpression)
			if err != nil {
				return nil, err
			}
			block.Value = value
		}
		p.index = closeBrace
		p.eat("}")

		nodes, err := p.parseFragmentNodes(blockTerminator(p))
		if err != nil {
			return nil, err
		}
		block.Then = &ast.Fragment{Nodes: nodes}

	case catchPos >= 0:
		expression, _, err := p.expression(p.index, p.index+catchPos, estree.ContextTemplateExpression)
		if err != nil {
			return nil, err
		}
		block.Expression = expression
		patternStart := p.index + catchPos + len(" catch ")
		if strings.TrimSpace(p.source[patternStart:closeBrace]) != "" {
			errPattern, _, err := p.pattern(patternStart, closeBrace, estree.ContextTemplateExpression)
			if err != nil {
				return nil, err
			}
			block.Error = errPattern
		}
		p.index = closeBrace
		p.eat("}")

		nodes, err := p.parseFragmentNodes(blockTerminator(p))
		if err != nil {
			return nil, err
		}
		block.Catch = &ast.Fragment{Nodes: nodes}

	default:
		expression, _, err := p.expression(p.index, closeBrace, estree.ContextTemplateExpression)
		if err != nil {
			return nil, err
		}
		block.Expression = expression
		p.index = closeBrace
		p.eat("}")

		pending, err := p.parseFragmentNodes(blockTerminator(p))
		if err != nil {
			return nil, err
		}
		block.Pending = &ast.Fragment{Nodes: pending}

		if p.startsWith("{:then") {
			p.index += len("{:then")
			value, err := p.parseOptionalArmPattern()
			if err != nil {
				return nil, err
			}
			block.Value = value
			nodes, err := p.parseFragmentNodes(blockTerminator(p))
			if err != nil {
				return nil, err
			}
			block.Then = &ast.Fragment{Nodes: nodes}
		}

		if p.startsWith("{:catch") {
			p.index += len("{:catch")
			errPattern, err := p.parseOptionalArmPattern()
			if err != nil {
				return nil, err
			}
			block.Error = errPattern
			nodes, err := p.parseFragmentNodes(blockTerminator(p))
			if err != nil {
				return nil, err
			}
			block.Catch = &ast.Fragment{Nodes: nodes}
		}
	}

	if err := p.eatBlockClose("await", start); err != nil {
		return nil, err
	}

	block.Span = ast.Span{Start: start, End: p.index}
	return block, nil
}

// parseOptionalArmPattern parses the optional pattern of `{:then value}` or
// `{:catch error}`, consuming the closing `}`.
func (p *Parser) parseOptionalArmPattern() (*estree.Node, error) {
	p.allowWhitespace()
	if p.eat("}") {
		return nil, nil
	}
	armClose := findMatchingBrace(p.source, p.index)
	if armClose < 0 {
		if err := p.error(CodeUnexpectedEOF, p.index, len(p.source), "unexpected end of input"); err != nil {
			return nil, err
		}
		p.index = len(p.source)
		return nil, nil
	}
	pattern, _, err := p.pattern(p.index, armClose, estree.ContextTemplateExpression)
	if err != nil {
		return nil, err
	}
	p.index = armClose
	p.eat("}")
	return pattern, nil
}

func (p *Parser) parseSnippetBlock(start int) (ast.FragmentNode, error) {
	if err := p.requireWhitespace(); err != nil {
		return nil, err
	}

	nameStart := p.index
	name := p.readUntilByte(func(ch byte) bool { return !isIdentByte(ch) })
	if name == "" {
		if err := p.error(CodeExpectedToken, nameStart, nameStart,
			"expected a snippet name"); err != nil {
			return nil, err
		}
	}
	expression := estree.Identifier(name, nameStart, p.index)
	p.allowWhitespace()

	parameters := []*estree.Node{}
	if p.eat("(") {
		for {
			p.allowWhitespace()
			if p.startsWith(")") || p.eof() {
				break
			}
			param, paramEnd, err := p.pattern(p.index, len(p.source), estree.ContextSnippetParams)
			if err != nil {
				return nil, err
			}
			if param == nil {
				break
			}
			p.index = paramEnd
			parameters = append(parameters, param)
			p.allowWhitespace()
			if !p.eat(",") {
				break
			}
		}
		if err := p.eatRequired(")"); err != nil {
			return nil, err
		}
		p.allowWhitespace()
	} else if err := p.error(CodeExpectedToken, p.index, p.index,
		"expected a parameter list"); err != nil {
		return nil, err
	}

	if err := p.eatRequired("}"); err != nil {
		return nil, err
	}

	body, err := p.parseFragmentNodes(blockTerminator(p))
	if err != nil {
		return nil, err
	}
	if err := p.eatBlockClose("snippet", start); err != nil {
		return nil, err
	}

	return &ast.SnippetBlock{
		Span:       ast.Span{Start: start, End: p.index},
		Expression: expression,
		Parameters: parameters,
		Body:       &ast.Fragment{Nodes: body},
	}, nil
}

// findKeywordAtDepthZero finds the first occurrence of keyword outside of
// brackets and strings. Comments are not skipped, so a keyword inside a
// comment is found like any other. Returns -1 when absent.
func findKeywordAtDepthZero(s, keyword string) int {
	depth := 0
	i := 0
	for i < len(s) {
		switch ch := s[i]; ch {
		case '(', '[', '{':
			depth++
			i++
		case ')', ']', '}':
			depth--
			i++
		case '\'', '"', '`':
			i = skipString(s, i+1, ch)
		default:
			if depth == 0 && strings.HasPrefix(s[i:], keyword) {
				return i
			}
			i++
		}
	}
	return -1
}
