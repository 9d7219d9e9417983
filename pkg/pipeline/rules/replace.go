package rules

import (
	"regexp"
	"strings"
)

// replaceSubmatch replaces every match of re in src with fn's result.
// fn receives the full match followed by each capture group; groups that did
// not participate in the match are passed as "".
func replaceSubmatch(re *regexp.Regexp, src string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if matches == nil {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))

	last := 0
	for _, m := range matches {
		b.WriteString(src[last:m[0]])

		groups := make([]string, len(m)/2)
		for g := range groups {
			if m[2*g] >= 0 {
				groups[g] = src[m[2*g]:m[2*g+1]]
			}
		}
		b.WriteString(fn(groups))

		last = m[1]
	}
	b.WriteString(src[last:])

	return b.String()
}
