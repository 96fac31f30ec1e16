// Package sanitize cleans free-text employee input on the way in and undoes
// slash escaping on the way out.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// plain undoes only the escaping the policy applies to text nodes. Encoded
// angle brackets stay encoded.
var plain = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&amp;", "&")

// Text removes every HTML tag from s and trims surrounding whitespace.
// Entities are decoded before sanitizing so encoded markup is stripped like
// literal markup.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(plain.Replace(strict.Sanitize(html.UnescapeString(s))))
}

// Unslash removes one level of backslash escaping: `\'` becomes `'` and `\\`
// becomes `\`. A trailing lone backslash is dropped.
func Unslash(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) {
			i++
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
