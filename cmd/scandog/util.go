package main

import (
	"fmt"
	"regexp"
)

// parsePattern compiles the file name filter. An empty string means no
// filter: every file is counted but nothing is reported as matched.
func parsePattern(s string) (*regexp.Regexp, error) {
	if s == "" {
		return nil, nil
	}
	re, err := regexp.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", s, err)
	}
	return re, nil
}
