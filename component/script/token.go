package script

// TokenKind discriminates lexical tokens of the embedded scripting language.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenKeyword
	TokenNumber
	TokenString
	TokenTemplate
	TokenRegexp
	TokenPunct
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:      "EOF",
	TokenIdent:    "Ident",
	TokenKeyword:  "Keyword",
	TokenNumber:   "Number",
	TokenString:   "String",
	TokenTemplate: "Template",
	TokenRegexp:   "Regexp",
	TokenPunct:    "Punct",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a single lexical token. Value holds the punctuator text, the
// identifier/keyword name, or the cooked value of a literal; Raw holds the
// exact source slice.
type Token struct {
	Kind  TokenKind
	Value string
	Raw   string
	Start int
	End   int

	// Number is the numeric value for TokenNumber tokens.
	Number float64
	// BigInt is set for TokenNumber tokens with an `n` suffix.
	BigInt bool
	// Pattern and Flags are set for TokenRegexp tokens.
	Pattern string
	Flags   string
}

var keywords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true, "let": true, "static": true,
}

// beforeExprPuncts are punctuators after which a `/` starts a regular
// expression rather than a division operator.
var beforeExprPuncts = map[string]bool{
	"(": true, "[": true, "{": true, ",": true, ";": true, ":": true,
	"=>": true, "=": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"%=": true, "**=": true, "<<=": true, ">>=": true, ">>>=": true,
	"&=": true, "|=": true, "^=": true, "&&=": true, "||=": true, "??=": true,
	"==": true, "!=": true, "===": true, "!==": true, "<": true, ">": true,
	"<=": true, ">=": true, "+": true, "-": true, "*": true, "/": true,
	"%": true, "**": true, "<<": true, ">>": true, ">>>": true, "&": true,
	"|": true, "^": true, "!": true, "~": true, "&&": true, "||": true,
	"??": true, "?": true, "?.": true, "...": true,
}

// beforeExprKeywords are keywords after which a `/` starts a regex.
var beforeExprKeywords = map[string]bool{
	"return": true, "typeof": true, "void": true, "delete": true,
	"throw": true, "new": true, "in": true, "instanceof": true, "of": true,
	"case": true, "do": true, "else": true, "yield": true, "await": true,
}
