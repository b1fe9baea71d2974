// Package blacklist matches URLs against a static deny-list of known-bad
// substrings using a single Aho-Corasick automaton.
package blacklist

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// DefaultEntries is the built-in deny-list.
var DefaultEntries = []string{
	"phishing-site.com",
	"fakebank.xyz",
	"malware-test.net",
}

type Matcher struct {
	matcher *ahocorasick.Matcher
	entries []string
}

// NewMatcher builds a matcher over the given deny-list entries. An empty
// list falls back to DefaultEntries.
func NewMatcher(entries []string) *Matcher {
	if len(entries) == 0 {
		entries = DefaultEntries
	}

	normalized := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			normalized = append(normalized, e)
		}
	}

	return &Matcher{
		matcher: ahocorasick.NewStringMatcher(normalized),
		entries: normalized,
	}
}

// Contains reports whether any deny-list entry occurs in the URL.
func (m *Matcher) Contains(url string) bool {
	if len(m.entries) == 0 {
		return false
	}
	return len(m.matcher.Match([]byte(strings.ToLower(url)))) > 0
}

func (m *Matcher) Entries() []string {
	return append([]string{}, m.entries...)
}
