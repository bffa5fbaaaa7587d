// Package normalize turns raw CSV text fields into display-ready strings.
//
// Source exports carry LaTeX-flavored fragments (math delimiters, style
// macros, sub/superscripts) and escaped newlines. Clean strips them in a
// fixed order; every step is total, so Clean never fails.
package normalize

import (
	"regexp"
	"strings"
)

// WrapperCommands are the single-argument style macros whose argument is kept
var WrapperCommands = []string{"mathbf", "boldsymbol", "mathrm", "operatorname", "text"}

// space matches what ECMAScript \s matches, which RE2 \s does not cover
// fully (\v, line and paragraph separators, the BOM).
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	mathDelimiterRe = regexp.MustCompile(`\\\(|\\\)|\\\[|\\\]`)
	wrapperRe       = regexp.MustCompile(`\\(` + strings.Join(WrapperCommands, "|") + `)` + space + `*\{([^{}]*)\}`)
	scriptGroupRe   = regexp.MustCompile(`[_^]\{([^{}]*)\}`)
	scriptMarkerRe  = regexp.MustCompile(`[_^]`)
	commandRe       = regexp.MustCompile(`\\[a-zA-Z]+`)
	emptyParensRe   = regexp.MustCompile(`\( *\)`)
	whitespaceRe    = regexp.MustCompile(space + `+`)
	spaceBeforeRe   = regexp.MustCompile(space + `+([?.!,])`)
)

// Clean normalizes a single raw text field. Empty input yields an empty string.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	s := raw

	// 1. Escaped newlines (the two characters `\n`) become a space
	s = strings.ReplaceAll(s, `\n`, " ")

	// 2. Drop \( \) \[ \] but keep what they enclose
	s = mathDelimiterRe.ReplaceAllString(s, "")

	// 3. \mathbf{x}, \text{x}, ... -> x
	s = wrapperRe.ReplaceAllString(s, "${2}")

	// 4. _{x} and ^{x} -> x, then any leftover _ or ^
	s = scriptGroupRe.ReplaceAllString(s, "${1}")
	s = scriptMarkerRe.ReplaceAllString(s, "")

	// 5. Remaining bare commands (\ln, \cdot, \rightarrow) vanish
	s = commandRe.ReplaceAllString(s, "")

	// 6. ( ) left behind by removed commands
	s = emptyParensRe.ReplaceAllString(s, "")

	// 7-9. Whitespace
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = spaceBeforeRe.ReplaceAllString(s, "${1}")

	return strings.TrimSpace(s)
}
