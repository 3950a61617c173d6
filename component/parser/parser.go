package parser

import (
	"regexp"
	"strings"

	"github.com/dhamidi/velo/component/ast"
	"github.com/dhamidi/velo/component/estree"
)

// Options controls a single parse.
type Options struct {
	// Modern must be true; legacy parsing is not supported.
	Modern bool
	// Loose records errors and inserts recovery nodes instead of aborting.
	Loose bool
	// Filename is attached to diagnostics when set.
	Filename string
	// Scripts overrides the embedded script sub-parser.
	Scripts ScriptParser
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Modern: true}
}

// Parser holds the state of one parse. A Parser is single-use and not safe
// for concurrent use; independent parses may run in parallel.
type Parser struct {
	source   string
	index    int
	limit    int
	loose    bool
	ts       bool
	filename string

	bridge bridge
	errors []*ParseError

	instance     *ast.Script
	moduleScript *ast.Script
	css          *ast.StyleSheet
	options      *ast.SvelteOptions
	metaTags     map[string]bool
	openStack    []openElement
	blockDepth   int
	lastClosed   *autoClosedTag
}

type autoClosedTag struct {
	tag    string
	reason string
	depth  int
}

// Normalize prepares raw input for parsing: CRLF collapses to LF and
// trailing whitespace is trimmed so end offsets are deterministic.
func Normalize(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	return strings.TrimRight(source, " \t\r\n")
}

// Parse parses a component source into a Root. In strict mode the first
// error aborts and is returned; in loose mode the Root is always returned
// and recorded diagnostics are available via the second return value.
func Parse(source string, opts Options) (*ast.Root, []*ParseError, error) {
	source = Normalize(source)

	if !opts.Modern {
		return nil, nil, &ParseError{
			Code:     CodeUnsupportedLegacyMode,
			Message:  "legacy parsing is not supported",
			Filename: opts.Filename,
		}
	}

	scripts := opts.Scripts
	if scripts == nil {
		scripts = defaultScriptParser{}
	}

	p := &Parser{
		source:   source,
		limit:    len(source),
		loose:    opts.Loose,
		ts:       detectTypescript(source),
		filename: opts.Filename,
		bridge:   bridge{scripts: scripts},
		metaTags: make(map[string]bool),
	}

	nodes, err := p.parseFragmentNodes(func() bool { return false })
	if err != nil {
		return nil, nil, err
	}

	root := &ast.Root{
		Span:     ast.Span{Start: 0, End: len(source)},
		Fragment: &ast.Fragment{Nodes: nodes},
		Options:  p.options,
		Instance: p.instance,
		Module:   p.moduleScript,
		CSS:      p.css,
		Metadata: ast.Metadata{TS: p.ts},
		JS:       []*estree.Node{},
	}
	return root, p.errors, nil
}

// ParseBytes is Parse over raw bytes.
func ParseBytes(source []byte, opts Options) (*ast.Root, []*ParseError, error) {
	return Parse(string(source), opts)
}

// tsScriptTag matches an opening script tag that carries lang="ts".
var tsScriptTag = regexp.MustCompile(`<script\b[^>]*\slang=(?:"ts"|'ts')`)

func detectTypescript(source string) bool {
	return tsScriptTag.MatchString(source)
}

// parseFragmentNodes parses fragment children until EOF, the terminator
// matches, or an enclosing close unwinds through this fragment. Adjacent
// text runs are fused as they are appended.
func (p *Parser) parseFragmentNodes(terminated func() bool) ([]ast.FragmentNode, error) {
	var nodes []ast.FragmentNode

	appendNode := func(n ast.FragmentNode) {
		if text, ok := n.(*ast.Text); ok && len(nodes) > 0 {
			if prev, ok := nodes[len(nodes)-1].(*ast.Text); ok && prev.End == text.Start {
				prev.End = text.End
				prev.Raw += text.Raw
				prev.Data += text.Data
				return
			}
		}
		nodes = append(nodes, n)
	}

	for !p.eof() && !terminated() {
		switch {
		case p.peek(0) == '<':
			node, err := p.parseAngle()
			if err != nil {
				return nil, err
			}
			if node != nil {
				appendNode(node)
			}
		case p.peek(0) == '{':
			node, err := p.parseBrace()
			if err != nil {
				return nil, err
			}
			if node != nil {
				appendNode(node)
			}
		default:
			appendNode(p.parseText())
		}
	}
	return nodes, nil
}

// parseText reads a literal text run up to the next `<` or `{`.
func (p *Parser) parseText() *ast.Text {
	start := p.index
	raw := p.readUntilByte(func(ch byte) bool { return ch == '<' || ch == '{' })
	if raw == "" {
		// A stray byte the dispatcher could not place; consume it so the
		// loop always advances.
		p.index++
		raw = p.source[start:p.index]
	}
	return &ast.Text{
		Span: ast.Span{Start: start, End: p.index},
		Raw:  raw,
		Data: decodeCharacterReferences(raw, false),
	}
}

