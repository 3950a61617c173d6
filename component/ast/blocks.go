package ast

import "github.com/dhamidi/velo/component/estree"

// IfAlternate is the `{:else}` side of an if block: either a plain Fragment
// or a nested IfBlock carrying elseif=true.
type IfAlternate interface {
	ifAlternate()
}

func (*Fragment) ifAlternate() {}
func (*IfBlock) ifAlternate() {}

// IfBlock is `{#if test}...{:else if ...}...{:else}...{/if}`.
type IfBlock struct {
	Span
	Elseif     bool
	Test       *estree.Node
	Consequent *Fragment
	Alternate  IfAlternate
}

func (*IfBlock) fragmentNode() {}

// EachBlock is `{#each expression as context, index (key)}...{:else}...{/each}`.
// Context is always present; Fallback is nil iff there is no `{:else}` arm.
type EachBlock struct {
	Span
	Expression *estree.Node
	Context    *estree.Node
	Body       *Fragment
	Fallback   *Fragment
	Index      *string
	Key        *estree.Node
}

func (*EachBlock) fragmentNode() {}

// AwaitBlock is `{#await expression}...{:then value}...{:catch error}...{/await}`,
// including the inline `then`/`catch` forms.
type AwaitBlock struct {
	Span
	Expression *estree.Node
	Value      *estree.Node
	Error      *estree.Node
	Pending    *Fragment
	Then       *Fragment
	Catch      *Fragment
}

func (*AwaitBlock) fragmentNode() {}

// KeyBlock is `{#key expression}...{/key}`.
type KeyBlock struct {
	Span
	Expression *estree.Node
	Fragment   *Fragment
}

func (*KeyBlock) fragmentNode() {}

// SnippetBlock is `{#snippet name(params)}...{/snippet}`.
type SnippetBlock struct {
	Span
	Expression *estree.Node
	Parameters []*estree.Node
	Body       *Fragment
}

func (*SnippetBlock) fragmentNode() {}
