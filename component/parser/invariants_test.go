package parser

import (
	"testing"

	"github.com/dhamidi/velo/component/ast"
)

// fragmentSpans returns the spans of a fragment's children in order.
func fragmentSpans(f *ast.Fragment) []ast.Span {
	if f == nil {
		return nil
	}
	spans := make([]ast.Span, len(f.Nodes))
	for i, n := range f.Nodes {
		spans[i] = n.Pos()
	}
	return spans
}

// checkNode verifies span sanity for a node and recurses into its fragments.
func checkNode(t *testing.T, sourceLen int, n ast.FragmentNode) {
	t.Helper()
	span := n.Pos()
	if span.Start < 0 || span.End > sourceLen || span.Start > span.End {
		t.Errorf("node %T has invalid span %d-%d", n, span.Start, span.End)
	}

	var fragments []*ast.Fragment
	switch node := n.(type) {
	case *ast.RegularElement:
		fragments = append(fragments, node.Fragment)
	case *ast.Component:
		fragments = append(fragments, node.Fragment)
	case *ast.SvelteElement:
		fragments = append(fragments, node.Fragment)
	case *ast.SvelteHead:
		fragments = append(fragments, node.Fragment)
	case *ast.SlotElement:
		fragments = append(fragments, node.Fragment)
	case *ast.TitleElement:
		fragments = append(fragments, node.Fragment)
	case *ast.IfBlock:
		fragments = append(fragments, node.Consequent)
		switch alt := node.Alternate.(type) {
		case *ast.Fragment:
			fragments = append(fragments, alt)
		case *ast.IfBlock:
			checkNode(t, sourceLen, alt)
		}
	case *ast.EachBlock:
		fragments = append(fragments, node.Body, node.Fallback)
	case *ast.AwaitBlock:
		fragments = append(fragments, node.Pending, node.Then, node.Catch)
	case *ast.KeyBlock:
		fragments = append(fragments, node.Fragment)
	case *ast.SnippetBlock:
		fragments = append(fragments, node.Body)
	}

	for _, f := range fragments {
		if f == nil {
			continue
		}
		spans := fragmentSpans(f)
		for i, child := range spans {
			if child.Start < span.Start || child.End > span.End {
				t.Errorf("child %d of %T (%d-%d) escapes parent span %d-%d",
					i, n, child.Start, child.End, span.Start, span.End)
			}
			if i > 0 && spans[i-1].End > child.Start {
				t.Errorf("children %d and %d of %T overlap: %v then %v",
					i-1, i, n, spans[i-1], child)
			}
		}
		for _, childNode := range f.Nodes {
			checkNode(t, sourceLen, childNode)
		}
	}
}

var invariantInputs = []string{
	"hello {name}!",
	"<div class=\"x\"><p>one</p><p>two</p></div>",
	"{#if a}A{:else if b}B{:else}C{/if}",
	"{#each items as item, i (item.id)}<li>{item.label}</li>{:else}empty{/each}",
	"{#await load()}...{:then data}{data}{:catch err}{err.message}{/await}",
	"{#key version}<Widget {prop}/>{/key}",
	"{#snippet row(item)}<td>{item}</td>{/snippet}{@render row(x)}",
	"<ul><li>a<li>b</ul>trailing",
	"<svelte:head><title>t</title></svelte:head><p>body</p>",
	"text <!-- c --> more {x + y * 2} end",
}

// Span coverage: parents cover children, siblings are ordered and disjoint.
func TestSpanCoverage(t *testing.T) {
	for _, input := range invariantInputs {
		t.Run(input, func(t *testing.T) {
			root := parse(t, input)
			spans := fragmentSpans(root.Fragment)
			for i := range spans {
				if i > 0 && spans[i-1].End > spans[i].Start {
					t.Errorf("top-level children overlap: %v then %v", spans[i-1], spans[i])
				}
			}
			for _, n := range root.Fragment.Nodes {
				checkNode(t, len(input), n)
			}
		})
	}
}

// Text round-trip: a Text node's raw value is exactly the covered source.
func TestTextRoundTrip(t *testing.T) {
	for _, input := range invariantInputs {
		t.Run(input, func(t *testing.T) {
			root := parse(t, input)
			var walk func(f *ast.Fragment)
			walk = func(f *ast.Fragment) {
				if f == nil {
					return
				}
				for _, n := range f.Nodes {
					if text, ok := n.(*ast.Text); ok {
						if input[text.Start:text.End] != text.Raw {
							t.Errorf("text %d-%d: raw %q != source %q",
								text.Start, text.End, text.Raw, input[text.Start:text.End])
						}
					}
					if el, ok := n.(*ast.RegularElement); ok {
						walk(el.Fragment)
					}
				}
			}
			walk(root.Fragment)
		})
	}
}

// At-most-one: instance/module/css fill their slots regardless of order.
func TestAtMostOneRegions(t *testing.T) {
	orders := []string{
		"<style>p{color:red}</style><script>let a;</script><script module>let b;</script>",
		"<script module>let b;</script><style>p{color:red}</style><script>let a;</script>",
		"<script>let a;</script><script module>let b;</script><style>p{color:red}</style>",
	}
	for _, source := range orders {
		t.Run(source, func(t *testing.T) {
			root := parse(t, source)
			if root.Instance == nil || root.Module == nil || root.CSS == nil {
				t.Errorf("all three regions must be populated")
			}
		})
	}
}
