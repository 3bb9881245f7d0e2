package utils

import (
	"strings"
	"unicode/utf8"
)

// ContainsString reports whether target is in list.
func ContainsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

// ContainsAnyFold reports whether text contains any keyword, ignoring case.
func ContainsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CleanToValidUTF8 drops invalid byte sequences.
func CleanToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

// SanitizeLogValue removes line breaks so user-supplied values cannot forge log lines.
func SanitizeLogValue(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}
