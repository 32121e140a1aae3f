package extract

import (
	"regexp"
	"strings"
)

// Hostname patterns for private and loopback ranges. This is a string match on
// the URL hostname only; it does not resolve DNS, so it is a best-effort guard
// and not a security boundary.
var blockedHostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^127\.`),
	regexp.MustCompile(`^10\.`),
	regexp.MustCompile(`^172\.(1[6-9]|2[0-9]|3[01])\.`),
	regexp.MustCompile(`^192\.168\.`),
	regexp.MustCompile(`^169\.254\.`),
	regexp.MustCompile(`^::1$`),
	regexp.MustCompile(`^fc00:`),
	regexp.MustCompile(`^localhost$`),
}

func BlockedHost(hostname string) bool {
	h := strings.ToLower(strings.TrimSpace(hostname))
	for _, p := range blockedHostPatterns {
		if p.MatchString(h) {
			return true
		}
	}
	return false
}
