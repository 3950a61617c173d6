package parser

import (
	"strings"

	"github.com/dhamidi/velo/component/ast"
)

// findCloseTag locates `</name[ws*]>` at or after from. It returns the
// offset of the `<` (the content end) and the offset just past `>`.
func findCloseTag(source string, from int, name string) (contentEnd, tagEnd int, ok bool) {
	needle := len(name) + 2
	for i := from; i+needle <= len(source); i++ {
		if source[i] != '<' || source[i+1] != '/' {
			continue
		}
		if !strings.EqualFold(source[i+2:i+needle], name) {
			continue
		}
		j := i + needle
		for j < len(source) && isWhitespace(source[j]) {
			j++
		}
		if j < len(source) && source[j] == '>' {
			return i, j + 1, true
		}
	}
	return len(source), len(source), false
}

// readScript parses the body of a top-level `<script>` element and assigns
// it to the instance or module slot. The cursor is just past the opening
// tag's `>`.
func (p *Parser) readScript(start int, attributes []ast.AttributeNode) error {
	contentStart := p.index
	contentEnd, tagEnd, ok := findCloseTag(p.source, p.index, "script")
	if !ok {
		if err := p.error(CodeUnclosedElement, start, len(p.source),
			"`<script>` was not closed"); err != nil {
			return err
		}
	}

	program, err := p.module(contentStart, contentEnd)
	if err != nil {
		return err
	}
	p.index = tagEnd

	script := &ast.Script{
		Span:       ast.Span{Start: start, End: tagEnd},
		Context:    scriptContext(attributes),
		Content:    program,
		Attributes: attributes,
	}

	if script.Context == "module" {
		if p.moduleScript != nil {
			if err := p.error(CodeDuplicateScript, start, tagEnd,
				"a component can only have one module-level `<script>` element"); err != nil {
				return err
			}
			return nil
		}
		p.moduleScript = script
		return nil
	}
	if p.instance != nil {
		if err := p.error(CodeDuplicateScript, start, tagEnd,
			"a component can only have one instance-level `<script>` element"); err != nil {
			return err
		}
		return nil
	}
	p.instance = script
	return nil
}

// scriptContext returns "module" for `<script module>` or
// `<script context="module">`, else "default".
func scriptContext(attributes []ast.AttributeNode) string {
	for _, a := range attributes {
		attr, ok := a.(*ast.Attribute)
		if !ok {
			continue
		}
		if attr.Name == "module" && attr.Value.True {
			return "module"
		}
		if attr.Name == "context" && len(attr.Value.Parts) == 1 {
			if text, ok := attr.Value.Parts[0].(*ast.Text); ok && text.Data == "module" {
				return "module"
			}
		}
	}
	return "default"
}

// readStyle parses the body of a top-level `<style>` element into the css
// slot. The cursor is just past the opening tag's `>`.
func (p *Parser) readStyle(start int, attributes []ast.AttributeNode) error {
	contentStart := p.index
	contentEnd, tagEnd, ok := findCloseTag(p.source, p.index, "style")
	if !ok {
		if err := p.error(CodeUnclosedElement, start, len(p.source),
			"`<style>` was not closed"); err != nil {
			return err
		}
	}

	duplicate := p.css != nil
	if duplicate {
		if err := p.error(CodeDuplicateStyle, start, tagEnd,
			"a component can only have one `<style>` element"); err != nil {
			return err
		}
	}

	prevLimit := p.limit
	p.limit = contentEnd
	children, err := p.readCSSBody()
	p.limit = prevLimit
	if err != nil {
		return err
	}
	p.index = tagEnd

	if duplicate {
		return nil
	}
	p.css = &ast.StyleSheet{
		Span:       ast.Span{Start: start, End: tagEnd},
		Attributes: attributes,
		Children:   children,
		Content: ast.CSSContent{
			Start:  contentStart,
			End:    contentEnd,
			Styles: p.source[contentStart:contentEnd],
		},
	}
	return nil
}
