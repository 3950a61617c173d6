package parser

import (
	"github.com/dhamidi/velo/component/estree"
	"github.com/dhamidi/velo/component/script"
)

// ScriptParser is the sub-parser ABI: each method receives the whole
// normalized source plus a start offset and returns a sub-AST with absolute
// offsets and the offset of the first byte after the parsed range.
type ScriptParser interface {
	ParseExpression(source string, offset int, ts bool) (*estree.Node, int, error)
	ParsePattern(source string, offset int, ts bool) (*estree.Node, int, error)
	ParseVariableDeclaration(source string, offset int, ts bool) (*estree.Node, int, error)
	ParseTypeAnnotation(source string, offset int, ts bool) (*estree.Node, int, error)
	ParseModule(source string, offset, end int, ts bool) (*estree.Node, error)
}

// defaultScriptParser adapts the script package to the ABI.
type defaultScriptParser struct{}

func (defaultScriptParser) ParseExpression(source string, offset int, ts bool) (*estree.Node, int, error) {
	n, end, err := script.ParseExpressionAt([]byte(source), offset, ts)
	if err != nil {
		return nil, end, err
	}
	return n, end, nil
}

func (defaultScriptParser) ParsePattern(source string, offset int, ts bool) (*estree.Node, int, error) {
	n, end, err := script.ParsePatternAt([]byte(source), offset, ts)
	if err != nil {
		return nil, end, err
	}
	return n, end, nil
}

func (defaultScriptParser) ParseVariableDeclaration(source string, offset int, ts bool) (*estree.Node, int, error) {
	n, end, err := script.ParseVariableDeclarationAt([]byte(source), offset, ts)
	if err != nil {
		return nil, end, err
	}
	return n, end, nil
}

func (defaultScriptParser) ParseTypeAnnotation(source string, offset int, ts bool) (*estree.Node, int, error) {
	n, end, err := script.ParseTypeAnnotationAt([]byte(source), offset, ts)
	if err != nil {
		return nil, end, err
	}
	return n, end, nil
}

func (defaultScriptParser) ParseModule(source string, offset, end int, ts bool) (*estree.Node, error) {
	n, err := script.ParseProgramAt([]byte(source), offset, end, ts)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// bridge couples the template parser to the script sub-parser. All
// canonicalization of sub-parser output happens here and nowhere else.
type bridge struct {
	scripts ScriptParser
}

func subErrorCode(err error) string {
	if serr, ok := err.(*script.Error); ok {
		return serr.Code
	}
	return ""
}

func subErrorSpan(err error, fallback int) (int, int) {
	if serr, ok := err.(*script.Error); ok {
		return serr.Start, serr.End
	}
	return fallback, fallback
}

// expression parses an expression at offset that must end at or before
// limit. The returned node is canonicalized for the given context.
func (p *Parser) expression(offset, limit int, ctx estree.Context) (*estree.Node, int, error) {
	bounded := p.source[:limit]
	node, end, err := p.bridge.scripts.ParseExpression(bounded, offset, p.ts)
	if err != nil {
		start, stop := subErrorSpan(err, offset)
		perr := p.error(CodeInvalidExpression, start, stop, "invalid expression")
		if perr != nil {
			perr.(*ParseError).Cause = subErrorCode(err)
			return nil, offset, perr
		}
		// Loose mode: synthesize an empty identifier placeholder.
		return estree.EmptyIdentifier(offset), limit, nil
	}
	return estree.Clean(node, ctx), end, nil
}

// pattern parses a binding pattern at offset bounded by limit.
func (p *Parser) pattern(offset, limit int, ctx estree.Context) (*estree.Node, int, error) {
	bounded := p.source[:limit]
	node, end, err := p.bridge.scripts.ParsePattern(bounded, offset, p.ts)
	if err != nil {
		start, stop := subErrorSpan(err, offset)
		perr := p.error(CodeExpectedPattern, start, stop, "expected a pattern")
		if perr != nil {
			perr.(*ParseError).Cause = subErrorCode(err)
			return nil, offset, perr
		}
		return estree.EmptyIdentifier(offset), limit, nil
	}
	return estree.Clean(node, ctx), end, nil
}

// variableDeclaration parses a `const ...` declaration for `{@const}`.
func (p *Parser) variableDeclaration(offset, limit int) (*estree.Node, int, error) {
	bounded := p.source[:limit]
	node, end, err := p.bridge.scripts.ParseVariableDeclaration(bounded, offset, p.ts)
	if err != nil {
		start, stop := subErrorSpan(err, offset)
		perr := p.error(CodeInvalidConstDeclaration, start, stop, "invalid declaration")
		if perr != nil {
			perr.(*ParseError).Cause = subErrorCode(err)
			return nil, offset, perr
		}
		return nil, limit, nil
	}
	return estree.Clean(node, estree.ContextConstDeclaration), end, nil
}

// module parses a script region [offset, end) as a program.
func (p *Parser) module(offset, end int) (*estree.Node, error) {
	node, err := p.bridge.scripts.ParseModule(p.source, offset, end, p.ts)
	if err != nil {
		start, stop := subErrorSpan(err, offset)
		perr := p.error(CodeInvalidExpression, start, stop, "script parse error")
		if perr != nil {
			perr.(*ParseError).Cause = subErrorCode(err)
			return nil, perr
		}
		empty := estree.NewNode("Program", offset, end)
		empty.Set("body", []*estree.Node{})
		empty.Set("sourceType", "module")
		return empty, nil
	}
	return estree.Clean(node, estree.ContextScriptBody), nil
}
