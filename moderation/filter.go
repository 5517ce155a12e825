// Package moderation detects disallowed language in guest submitted text.
package moderation

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

const DefaultReplacement = "****"

// DenyList is matched case-insensitively as whole words
var DenyList = []string{
	"ass", "asshole", "bastard", "bitch", "bollocks", "bullshit", "cock", "crap",
	"cunt", "damn", "dick", "dickhead", "fuck", "fucking", "motherfucker", "nigger",
	"piss", "prick", "pussy", "shit", "slut", "twat", "wanker", "whore",
}

// EvasionTerms are also matched anywhere in the text, tolerating repeated
// letters and look-alike substitutions ("shiiit", "f*ck", "b1tch").
var EvasionTerms = []string{
	"fuck", "shit", "bitch", "cunt", "dick", "asshole", "whore", "nigger",
	"bastard", "twat", "wanker", "slut",
}

var lookAlikes = map[rune]string{
	'a': `a@4`,
	'e': `e3`,
	'i': `i1l!\|`,
	'o': `o0`,
	's': `s5\$`,
	't': `t7\+`,
	'u': `uv\*`,
}

type Filter struct {
	words    *regexp.Regexp
	patterns []*regexp.Regexp
}

// New compiles a filter. Terms must be plain lower case letters.
func New(denyList, evasionTerms []string) *Filter {
	words := make([]string, 0, len(denyList))
	for _, w := range denyList {
		words = append(words, regexp.QuoteMeta(strings.ToLower(w)))
	}
	// Longest first so "asshole" is replaced as a whole and not as "ass" + "hole"
	sort.Slice(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	f := &Filter{}
	if len(words) > 0 {
		f.words = regexp.MustCompile(`(?i)\b(?:` + strings.Join(words, "|") + `)\b`)
	}
	for _, term := range evasionTerms {
		f.patterns = append(f.patterns, regexp.MustCompile(evasionPattern(term)))
	}
	return f
}

// evasionPattern turns "shit" into (?i)[s5\$]+h+[i1l!\|]+[t7\+]+
func evasionPattern(term string) string {
	var b strings.Builder
	b.WriteString("(?i)")
	for _, c := range strings.ToLower(term) {
		if alt, ok := lookAlikes[c]; ok {
			b.WriteString("[" + alt + "]+")
		} else {
			b.WriteString(regexp.QuoteMeta(string(c)) + "+")
		}
	}
	return b.String()
}

var (
	defaultFilter *Filter
	defaultOnce   sync.Once
)

// Default returns the filter built from DenyList and EvasionTerms
func Default() *Filter {
	defaultOnce.Do(func() {
		defaultFilter = New(DenyList, EvasionTerms)
	})
	return defaultFilter
}

func (f *Filter) ContainsDisallowedContent(text string) bool {
	if text == "" {
		return false
	}
	if f.words != nil && f.words.MatchString(text) {
		return true
	}
	for _, p := range f.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Sanitize replaces every match with replacement (DefaultReplacement if empty).
// Only meant for display, submissions are accepted or rejected as a whole.
func (f *Filter) Sanitize(text, replacement string) string {
	if text == "" {
		return text
	}
	if replacement == "" {
		replacement = DefaultReplacement
	}
	if f.words != nil {
		text = f.words.ReplaceAllLiteralString(text, replacement)
	}
	for _, p := range f.patterns {
		text = p.ReplaceAllLiteralString(text, replacement)
	}
	return text
}

func ContainsDisallowedContent(text string) bool {
	return Default().ContainsDisallowedContent(text)
}

func Sanitize(text, replacement string) string {
	return Default().Sanitize(text, replacement)
}
