package parser

import "regexp"

// voidElements parse with no body per the HTML void element list.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func isVoid(name string) bool {
	return voidElements[name]
}

// pClosers are the elements whose opening tag implicitly closes an open <p>.
var pClosers = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"details": true, "div": true, "dl": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hgroup": true, "hr": true, "main": true, "menu": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "ul": true,
}

// autoClosedBy maps an open element to the set of sibling tags whose opening
// implies its closing tag was omitted.
var autoClosedBy = map[string]map[string]bool{
	"li":       {"li": true},
	"dt":       {"dt": true, "dd": true},
	"dd":       {"dt": true, "dd": true},
	"rt":       {"rt": true, "rp": true},
	"rp":       {"rt": true, "rp": true},
	"optgroup": {"optgroup": true},
	"option":   {"option": true, "optgroup": true},
	"thead":    {"tbody": true, "tfoot": true},
	"tbody":    {"tbody": true, "tfoot": true},
	"tfoot":    {"tbody": true},
	"tr":       {"tr": true, "tbody": true, "tfoot": true},
	"td":       {"td": true, "th": true, "tr": true},
	"th":       {"td": true, "th": true, "tr": true},
}

// closingTagOmitted reports whether opening `next` implicitly closes an open
// `current` element.
func closingTagOmitted(current, next string) bool {
	if current == "p" {
		return pClosers[next]
	}
	if set, ok := autoClosedBy[current]; ok {
		return set[next]
	}
	return false
}

// rootOnlyMetaTags may appear only once, at the top level of the template.
var rootOnlyMetaTags = map[string]bool{
	"svelte:head":     true,
	"svelte:options":  true,
	"svelte:window":   true,
	"svelte:document": true,
	"svelte:body":     true,
}

var metaTags = map[string]bool{
	"svelte:head": true, "svelte:options": true, "svelte:window": true,
	"svelte:document": true, "svelte:body": true, "svelte:element": true,
	"svelte:component": true, "svelte:self": true, "svelte:fragment": true,
}

var (
	regexValidElementName = regexp.MustCompile(
		`^(?:![a-zA-Z]+|[a-zA-Z](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?|[a-zA-Z][a-zA-Z0-9]*:[a-zA-Z][a-zA-Z0-9-]*[a-zA-Z0-9])$`)
	regexValidComponentName = regexp.MustCompile(
		`^(?:\p{Lu}[$\x{200C}\x{200D}\p{L}\p{Nd}_.]*|[\p{L}$_][$\x{200C}\x{200D}\p{L}\p{Nd}_]*(?:\.[$\x{200C}\x{200D}\p{L}\p{Nd}_]+)+)$`)
)

// isComponentName reports whether a tag name refers to a component:
// capitalized, or a dotted member path.
func isComponentName(name string) bool {
	return regexValidComponentName.MatchString(name)
}
