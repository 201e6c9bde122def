package analysis

import (
	"regexp"
	"strings"

	"wefix/models"
)

const (
	spamReasonTooShort  = "Description too short"
	spamReasonRepeated  = "Repeated characters detected"
	spamReasonPattern   = "Spam pattern detected"
	minDescriptionChars = 10
)

// spamPatterns are checked in order against the lower-cased text.
var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://`),
	regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`),
	regexp.MustCompile(`(buy|sell|cheap|discount|offer|deal).*now`),
	regexp.MustCompile(`(click|visit|call).*(now|today)`),
}

// DetectSpam flags descriptions that look like spam. Rules run in a
// fixed order and the first hit wins: too-short text, a run of repeated
// characters, then URL/email/commercial patterns.
func DetectSpam(text string) models.Spam {
	if text == "" {
		return models.Spam{IsSpam: false, Confidence: 0}
	}

	if len(strings.TrimSpace(text)) < minDescriptionChars {
		return models.Spam{IsSpam: true, Confidence: 0.7, Reason: spamReasonTooShort}
	}

	if hasRepeatedRun(text, 6) {
		return models.Spam{IsSpam: true, Confidence: 0.8, Reason: spamReasonRepeated}
	}

	lower := strings.ToLower(text)
	for _, pattern := range spamPatterns {
		if pattern.MatchString(lower) {
			return models.Spam{IsSpam: true, Confidence: 0.9, Reason: spamReasonPattern}
		}
	}

	return models.Spam{IsSpam: false, Confidence: 0.1}
}

// hasRepeatedRun reports whether text contains n or more identical runes
// in a row. RE2 has no backreferences, so this is a plain scan.
func hasRepeatedRun(text string, n int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
