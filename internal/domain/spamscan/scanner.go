package spamscan

import (
	"strings"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

// ScanResult is the outcome of scanning one piece of text or one sender.
// Score may be negative when legitimate indicators outweigh malicious
// ones; clamping to [0,100] happens once, in AnalyzeEmail.
type ScanResult struct {
	Keywords []domain.KeywordMatch
	Score    int
}

// ScanText matches the text against every rule in the malicious and
// legitimate rule sets. Matching is case-insensitive substring
// containment. Rule iteration order is fixed, so the same input always
// produces the same matches in the same order.
func ScanText(text string) ScanResult {
	result := ScanResult{Keywords: make([]domain.KeywordMatch, 0)}
	if text == "" {
		return result
	}

	lower := strings.ToLower(text)

	for _, rule := range maliciousRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				result.Keywords = append(result.Keywords, domain.KeywordMatch{
					Keyword:  keyword,
					Category: rule.Category,
					Severity: domain.SeverityForWeight(rule.Weight),
				})
				result.Score += rule.Weight
			}
		}
	}

	// Legitimate matches are always reported at low severity so they never
	// influence the high-risk verdict check.
	for _, rule := range legitimateRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				result.Keywords = append(result.Keywords, domain.KeywordMatch{
					Keyword:  keyword,
					Category: rule.Category,
					Severity: domain.SeverityLow,
				})
				result.Score += rule.Weight
			}
		}
	}

	return result
}
