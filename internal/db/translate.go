package db

import (
	"strconv"
	"strings"
)

// TranslatePlaceholders rewrites every generic '?' placeholder in text to
// PostgreSQL-native positional syntax, numbered $1..$n in left-to-right
// occurrence order. Question marks inside single-quoted literals are left
// alone. Text containing no generic placeholder (including text already
// written with $n syntax) is returned unchanged.
func TranslatePlaceholders(text string) string {
	if !strings.ContainsRune(text, '?') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)

	n := 0
	quoted := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\'':
			// a doubled '' inside a literal toggles twice, which nets out
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// passthrough is the identity translation used by backends whose native
// placeholder syntax is the generic '?'.
func passthrough(text string) string { return text }
