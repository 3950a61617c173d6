package ast

import "encoding/json"

type jsonStyleSheet struct {
	Type       string            `json:"type"`
	Start      int               `json:"start"`
	End        int               `json:"end"`
	Attributes []AttributeNode   `json:"attributes"`
	Children   []StyleSheetChild `json:"children"`
	Content    jsonCSSContent    `json:"content"`
}

type jsonCSSContent struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Styles string `json:"styles"`
}

func (n *StyleSheet) MarshalJSON() ([]byte, error) {
	children := n.Children
	if children == nil {
		children = []StyleSheetChild{}
	}
	return json.Marshal(jsonStyleSheet{
		Type:       "StyleSheet",
		Start:      n.Start,
		End:        n.End,
		Attributes: attrs(n.Attributes),
		Children:   children,
		Content:    jsonCSSContent{n.Content.Start, n.Content.End, n.Content.Styles},
	})
}

type jsonCSSRule struct {
	Type    string        `json:"type"`
	Start   int           `json:"start"`
	End     int           `json:"end"`
	Prelude *SelectorList `json:"prelude"`
	Block   *CSSBlock     `json:"block"`
}

func (n *CSSRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonCSSRule{"Rule", n.Start, n.End, n.Prelude, n.Block})
}

type jsonCSSAtrule struct {
	Type    string    `json:"type"`
	Start   int       `json:"start"`
	End     int       `json:"end"`
	Name    string    `json:"name"`
	Prelude string    `json:"prelude"`
	Block   *CSSBlock `json:"block"`
}

func (n *CSSAtrule) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonCSSAtrule{"Atrule", n.Start, n.End, n.Name, n.Prelude, n.Block})
}

type jsonCSSBlock struct {
	Type     string          `json:"type"`
	Start    int             `json:"start"`
	End      int             `json:"end"`
	Children []CSSBlockChild `json:"children"`
}

func (n *CSSBlock) MarshalJSON() ([]byte, error) {
	children := n.Children
	if children == nil {
		children = []CSSBlockChild{}
	}
	return json.Marshal(jsonCSSBlock{"Block", n.Start, n.End, children})
}

type jsonCSSDeclaration struct {
	Type     string `json:"type"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Property string `json:"property"`
	Value    string `json:"value"`
}

func (n *CSSDeclaration) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonCSSDeclaration{"Declaration", n.Start, n.End, n.Property, n.Value})
}

type jsonSelectorList struct {
	Type     string             `json:"type"`
	Start    int                `json:"start"`
	End      int                `json:"end"`
	Children []*ComplexSelector `json:"children"`
}

func (n *SelectorList) MarshalJSON() ([]byte, error) {
	children := n.Children
	if children == nil {
		children = []*ComplexSelector{}
	}
	return json.Marshal(jsonSelectorList{"SelectorList", n.Start, n.End, children})
}

type jsonComplexSelector struct {
	Type     string              `json:"type"`
	Start    int                 `json:"start"`
	End      int                 `json:"end"`
	Children []*RelativeSelector `json:"children"`
}

func (n *ComplexSelector) MarshalJSON() ([]byte, error) {
	children := n.Children
	if children == nil {
		children = []*RelativeSelector{}
	}
	return json.Marshal(jsonComplexSelector{"ComplexSelector", n.Start, n.End, children})
}

type jsonRelativeSelector struct {
	Type       string           `json:"type"`
	Start      int              `json:"start"`
	End        int              `json:"end"`
	Combinator *CSSCombinator   `json:"combinator"`
	Selectors  []SimpleSelector `json:"selectors"`
}

func (n *RelativeSelector) MarshalJSON() ([]byte, error) {
	selectors := n.Selectors
	if selectors == nil {
		selectors = []SimpleSelector{}
	}
	return json.Marshal(jsonRelativeSelector{"RelativeSelector", n.Start, n.End, n.Combinator, selectors})
}

type jsonNamed struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Name  string `json:"name"`
}

func (n *CSSCombinator) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNamed{"Combinator", n.Start, n.End, n.Name})
}

func (n *TypeSelector) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNamed{"TypeSelector", n.Start, n.End, n.Name})
}

func (n *IDSelector) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNamed{"IdSelector", n.Start, n.End, n.Name})
}

func (n *ClassSelector) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNamed{"ClassSelector", n.Start, n.End, n.Name})
}

func (n *PseudoElementSelector) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNamed{"PseudoElementSelector", n.Start, n.End, n.Name})
}

func (n *NestingSelector) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNamed{"NestingSelector", n.Start, n.End, n.Name})
}

type jsonAttributeSelector struct {
	Type    string  `json:"type"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Name    string  `json:"name"`
	Matcher *string `json:"matcher"`
	Value   *string `json:"value"`
	Flags   *string `json:"flags"`
}

func (n *AttributeSelector) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonAttributeSelector{"AttributeSelector", n.Start, n.End, n.Name, n.Matcher, n.Value, n.Flags})
}

type jsonPseudoClassSelector struct {
	Type  string        `json:"type"`
	Start int           `json:"start"`
	End   int           `json:"end"`
	Name  string        `json:"name"`
	Args  *SelectorList `json:"args"`
}

func (n *PseudoClassSelector) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPseudoClassSelector{"PseudoClassSelector", n.Start, n.End, n.Name, n.Args})
}

type jsonValued struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Value string `json:"value"`
}

func (n *Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonValued{"Percentage", n.Start, n.End, n.Value})
}

func (n *Nth) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonValued{"Nth", n.Start, n.End, n.Value})
}
