// Package sanitize escapes user-supplied text for safe embedding in
// HTML-consuming clients.
package sanitize

import "strings"

// replacer escapes the five HTML-special characters. The ampersand rule runs
// first so entities produced by the later substitutions are not re-escaped.
// strings.Replacer applies the earliest-declared match at each position,
// which preserves that ordering guarantee.
var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// HTML returns s with &, <, >, " and ' entity-encoded.
func HTML(s string) string {
	return replacer.Replace(s)
}
