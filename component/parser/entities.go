package parser

import (
	"strconv"
	"strings"
)

// namedEntities covers the references that appear in real component markup.
// Unknown names pass through verbatim, matching reference behavior for
// unrecognized entities.
var namedEntities = map[string]rune{
	"amp": '&', "lt": '<', "gt": '>', "quot": '"', "apos": '\'',
	"nbsp": ' ', "copy": '©', "reg": '®', "trade": '™',
	"hellip": '…', "mdash": '—', "ndash": '–', "lsquo": '‘',
	"rsquo": '’', "ldquo": '“', "rdquo": '”',
	"laquo": '«', "raquo": '»', "times": '×', "divide": '÷',
	"plusmn": '±', "deg": '°', "micro": 'µ', "middot": '·',
	"bull": '•', "sect": '§', "para": '¶', "dagger": '†',
	"Dagger": '‡', "permil": '‰', "euro": '€', "pound": '£',
	"yen": '¥', "cent": '¢', "curren": '¤', "szlig": 'ß',
	"agrave": 'à', "aacute": 'á', "eacute": 'é', "egrave": 'è',
	"iacute": 'í', "oacute": 'ó', "uacute": 'ú', "ntilde": 'ñ',
	"uuml": 'ü', "ouml": 'ö', "auml": 'ä', "Auml": 'Ä',
	"Ouml": 'Ö', "Uuml": 'Ü', "larr": '←', "rarr": '→',
	"uarr": '↑', "darr": '↓', "harr": '↔', "infin": '∞',
	"ne": '≠', "le": '≤', "ge": '≥', "minus": '−',
}

// decodeCharacterReferences decodes `&name;`, `&#NNN;` and `&#xHHH;` forms.
// In attribute values (inAttribute) a reference must end with `;` to avoid
// mangling URLs like `?a=1&copy=2`.
func decodeCharacterReferences(s string, inAttribute bool) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}

	var out strings.Builder
	out.WriteString(s[:amp])
	i := amp
	for i < len(s) {
		if s[i] != '&' {
			out.WriteByte(s[i])
			i++
			continue
		}

		end, r, ok := decodeReferenceAt(s, i, inAttribute)
		if !ok {
			out.WriteByte('&')
			i++
			continue
		}
		out.WriteRune(r)
		i = end
	}
	return out.String()
}

// decodeReferenceAt decodes one reference starting at the `&` at i. It
// returns the index after the reference and the decoded rune.
func decodeReferenceAt(s string, i int, inAttribute bool) (int, rune, bool) {
	j := i + 1
	if j < len(s) && s[j] == '#' {
		j++
		hex := false
		if j < len(s) && (s[j] == 'x' || s[j] == 'X') {
			hex = true
			j++
		}
		numStart := j
		for j < len(s) && isDigitFor(s[j], hex) {
			j++
		}
		if j == numStart {
			return 0, 0, false
		}
		base := 10
		if hex {
			base = 16
		}
		v, err := strconv.ParseUint(s[numStart:j], base, 32)
		if err != nil || v > 0x10FFFF {
			return 0, 0, false
		}
		if j < len(s) && s[j] == ';' {
			j++
		} else if inAttribute {
			return 0, 0, false
		}
		return j, rune(v), true
	}

	nameStart := j
	for j < len(s) && (isIdentByte(s[j])) {
		j++
	}
	name := s[nameStart:j]
	r, known := namedEntities[name]
	if !known {
		return 0, 0, false
	}
	if j < len(s) && s[j] == ';' {
		j++
	} else if inAttribute {
		return 0, 0, false
	}
	return j, r, true
}

func isDigitFor(ch byte, hex bool) bool {
	if ch >= '0' && ch <= '9' {
		return true
	}
	if !hex {
		return false
	}
	return (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
