package scanner

import (
	"regexp"
	"testing"
)

// TestMatcherWithPattern verifies base-name matching.
func TestMatcherWithPattern(t *testing.T) {
	m := newMatcher(regexp.MustCompile(`\.log$`))

	tests := []struct {
		name string
		want bool
	}{
		{"a.log", true},
		{"b.txt", false},
		{"log", false},
		{"nested.log.bak", false},
		{".log", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Matches(tt.name); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// TestMatcherDisabled verifies that without a pattern nothing matches, so
// the matched-files list stays empty.
func TestMatcherDisabled(t *testing.T) {
	m := newMatcher(nil)
	if m.Matches("anything.log") {
		t.Error("disabled matcher must not match")
	}
}
