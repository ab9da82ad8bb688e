package scanner

import "regexp"

// matcher tests file base names against an optional precompiled pattern.
// Stateless and safe for concurrent use (regexp.Regexp is).
//
// With no pattern configured Matches always reports false: every file is
// still counted and sized, but the matched-files list stays empty unless
// a pattern was explicitly requested.
type matcher struct {
	re *regexp.Regexp
}

func newMatcher(re *regexp.Regexp) *matcher {
	return &matcher{re: re}
}

func (m *matcher) Matches(baseName string) bool {
	return m.re != nil && m.re.MatchString(baseName)
}
