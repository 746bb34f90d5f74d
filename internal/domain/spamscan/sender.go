package spamscan

import (
	"regexp"
	"strings"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

// senderPattern is one regexp heuristic applied to "displayName email".
// Positive weights emit a KeywordMatch; negative weights adjust the score
// silently, so legitimate-looking senders reduce risk without being
// reported as findings.
type senderPattern struct {
	re     *regexp.Regexp
	weight int
}

var senderPatterns = []senderPattern{
	{regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`), -5}, // well-formed bare address
	{regexp.MustCompile(`(?i)noreply|no-reply|donotreply`), 5},
	{regexp.MustCompile(`(?i)support|help|service`), -3},
	{regexp.MustCompile(`(?i)admin|administrator`), 10},
	{regexp.MustCompile(`(?i)security|alert|notification`), 8},
}

// freeMailDomains are consumer webmail providers. Legitimate businesses
// rarely send from these, so they add a small amount of risk.
var freeMailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}

// EvaluateSender scores the sender display name and address against the
// fixed heuristic patterns plus the free-mail domain list.
func EvaluateSender(displayName, email string) ScanResult {
	result := ScanResult{Keywords: make([]domain.KeywordMatch, 0)}

	full := strings.ToLower(displayName + " " + email)

	for _, p := range senderPatterns {
		if p.re.MatchString(full) {
			result.Score += p.weight
			if p.weight > 0 {
				result.Keywords = append(result.Keywords, domain.KeywordMatch{
					Keyword:  "suspicious sender pattern",
					Category: "sender",
					Severity: domain.SeverityForWeight(p.weight),
				})
			}
		}
	}

	// Addresses without an @ simply skip the domain check.
	if dom := extractDomain(email); dom != "" {
		for _, free := range freeMailDomains {
			if dom == free {
				result.Score += 5
				result.Keywords = append(result.Keywords, domain.KeywordMatch{
					Keyword:  "free email service",
					Category: "sender",
					Severity: domain.SeverityLow,
				})
				break
			}
		}
	}

	return result
}

// extractDomain returns the lowercased domain part of an email address,
// or "" when the address is malformed.
func extractDomain(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}
