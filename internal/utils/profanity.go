package utils

import (
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// ProfanityFilter masks banned words with '*' of the same rune length.
// ASCII words only match on word boundaries; other words match anywhere.
type ProfanityFilter struct {
	re *regexp.Regexp
}

var (
	defaultFilter     *ProfanityFilter
	defaultFilterOnce sync.Once
)

var DefaultBannedWords = []string{
	"fuck", "fucking", "fucker", "motherfucker", "shit", "bullshit",
	"bastard", "bitch", "cunt", "asshole", "dumbass", "jackass",
	"slut", "whore", "wanker", "twat", "prick", "dickhead", "shithead",
	"dipshit", "cocksucker", "douchebag",
}

// MaskProfanity masks text with the default word list plus any
// comma-separated words in PROFANITY_WORDS.
func MaskProfanity(s string) string {
	if s == "" {
		return s
	}
	defaultFilterOnce.Do(func() {
		words := slices.Clone(DefaultBannedWords)
		if extra := strings.TrimSpace(os.Getenv("PROFANITY_WORDS")); extra != "" {
			words = append(words, strings.Split(extra, ",")...)
		}
		defaultFilter = NewProfanityFilter(words)
	})
	return defaultFilter.Mask(s)
}

func NewProfanityFilter(words []string) *ProfanityFilter {
	uniq := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && !slices.Contains(uniq, w) {
			uniq = append(uniq, w)
		}
	}
	if len(uniq) == 0 {
		return &ProfanityFilter{}
	}
	// longest first so a word wins over its own prefix
	slices.SortFunc(uniq, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})

	alts := make([]string, len(uniq))
	for i, w := range uniq {
		if isASCIIWord(w) {
			alts[i] = `\b` + regexp.QuoteMeta(w) + `\b`
		} else {
			alts[i] = regexp.QuoteMeta(w)
		}
	}
	return &ProfanityFilter{re: regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)}
}

func (pf *ProfanityFilter) Mask(s string) string {
	if pf == nil || pf.re == nil || s == "" {
		return s
	}
	return pf.re.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Repeat("*", utf8.RuneCountInString(m))
	})
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-') {
			return false
		}
	}
	return s != ""
}
