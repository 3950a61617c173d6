package ast

import "github.com/dhamidi/velo/component/estree"

// BaseElement carries the fields shared by every element-like node.
type BaseElement struct {
	Span
	Name       string
	Attributes []AttributeNode
	Fragment   *Fragment
}

// RegularElement is a lowercased HTML element.
type RegularElement struct{ BaseElement }

func (*RegularElement) fragmentNode() {}

// Component is a capitalized or dotted component reference.
type Component struct{ BaseElement }

func (*Component) fragmentNode() {}

// SvelteElement is `<svelte:element this={tag}>`.
type SvelteElement struct {
	BaseElement
	Tag *estree.Node
}

func (*SvelteElement) fragmentNode() {}

// SvelteComponent is `<svelte:component this={expression}>`.
type SvelteComponent struct {
	BaseElement
	Expression *estree.Node
}

func (*SvelteComponent) fragmentNode() {}

// SvelteSelf is `<svelte:self>`.
type SvelteSelf struct{ BaseElement }

func (*SvelteSelf) fragmentNode() {}

// SvelteFragment is `<svelte:fragment>`.
type SvelteFragment struct{ BaseElement }

func (*SvelteFragment) fragmentNode() {}

// SvelteHead is `<svelte:head>`.
type SvelteHead struct{ BaseElement }

func (*SvelteHead) fragmentNode() {}

// SvelteWindow is `<svelte:window>`.
type SvelteWindow struct{ BaseElement }

func (*SvelteWindow) fragmentNode() {}

// SvelteDocument is `<svelte:document>`.
type SvelteDocument struct{ BaseElement }

func (*SvelteDocument) fragmentNode() {}

// SvelteBody is `<svelte:body>`.
type SvelteBody struct{ BaseElement }

func (*SvelteBody) fragmentNode() {}

// SvelteOptionsRaw is the `<svelte:options>` element before it is lifted to
// Root.Options. It only survives in the fragment in loose mode when its
// placement is invalid.
type SvelteOptionsRaw struct{ BaseElement }

func (*SvelteOptionsRaw) fragmentNode() {}

// SlotElement is `<slot>` outside a shadow-root template.
type SlotElement struct{ BaseElement }

func (*SlotElement) fragmentNode() {}

// TitleElement is `<title>` inside `<svelte:head>`.
type TitleElement struct{ BaseElement }

func (*TitleElement) fragmentNode() {}
