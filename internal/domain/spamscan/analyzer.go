package spamscan

import (
	"fmt"
	"strings"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

// categoryThreat maps a keyword category to the threat type it indicates.
// The slice order is the explicit tie-break priority for classification:
// when two categories have the same match count, the one listed first
// wins. This replaces any reliance on incidental map iteration order.
type categoryThreat struct {
	category string
	threat   domain.ThreatType
}

var threatPriority = []categoryThreat{
	{"financial", domain.ThreatPhishing},
	{"authority", domain.ThreatPhishing},
	{"personal", domain.ThreatPhishing},
	{"urgency", domain.ThreatPhishing},
	{"threats", domain.ThreatScam},
	{"offers", domain.ThreatScam},
	{"technical", domain.ThreatMalware},
	{"suspicious", domain.ThreatMalware},
	{"legitimate", domain.ThreatLegitimate},
	{"professional", domain.ThreatLegitimate},
	{"sender", domain.ThreatSpam},
}

// AnalyzeEmail runs the full rule-based analysis: subject and body are
// scanned independently (a keyword present in both is reported twice),
// sender heuristics are applied, and the combined signals produce the
// verdict, confidence, threat type and explanation.
//
// Missing subject or body fields degrade to empty scans; the caller is
// responsible for rejecting wholly missing required fields beforehand.
func AnalyzeEmail(content domain.EmailContent) domain.AnalysisResult {
	subjectResult := ScanText(content.Subject)
	bodyResult := ScanText(content.Body)
	senderResult := EvaluateSender(content.Sender, content.SenderEmail)

	detected := make([]domain.KeywordMatch, 0,
		len(subjectResult.Keywords)+len(bodyResult.Keywords)+len(senderResult.Keywords))
	detected = append(detected, subjectResult.Keywords...)
	detected = append(detected, bodyResult.Keywords...)
	detected = append(detected, senderResult.Keywords...)

	riskScore := clamp(subjectResult.Score+bodyResult.Score+senderResult.Score, 0, 100)

	hasHighRisk := false
	hasUrgency := false
	hasFinancial := false
	for _, k := range detected {
		switch k.Severity {
		case domain.SeverityCritical, domain.SeverityHigh:
			hasHighRisk = true
		}
		switch k.Category {
		case "urgency":
			hasUrgency = true
		case "financial":
			hasFinancial = true
		}
	}

	// A single decisive signal (critical/high keyword) or the compound
	// urgency+financial pattern overrides the raw score threshold.
	isMalicious := hasHighRisk || (hasUrgency && hasFinancial) || riskScore >= RiskThresholdMedium

	confidence := riskScore + 20
	if hasHighRisk {
		confidence += 20
	}
	if hasUrgency && hasFinancial {
		confidence += 15
	}
	if confidence > 100 {
		confidence = 100
	}

	result := domain.AnalysisResult{
		IsMalicious:      isMalicious,
		Confidence:       confidence,
		ThreatType:       classifyThreat(detected),
		DetectedKeywords: detected,
		RiskScore:        riskScore,
	}
	result.Explanation = buildExplanation(result)
	return result
}

// classifyThreat picks the most frequent keyword category and maps it to a
// threat type. Ties go to the category earliest in threatPriority. An
// email with no matches at all defaults to spam.
func classifyThreat(keywords []domain.KeywordMatch) domain.ThreatType {
	if len(keywords) == 0 {
		return domain.ThreatSpam
	}

	counts := make(map[string]int)
	for _, k := range keywords {
		counts[k.Category]++
	}

	best := domain.ThreatSpam
	bestCount := 0
	for _, ct := range threatPriority {
		if c := counts[ct.category]; c > bestCount {
			best = ct.threat
			bestCount = c
		}
	}
	return best
}

// buildExplanation assembles the user-facing explanation: a risk-tier
// sentence, the critical/high keyword literals, one sentence per detected
// signal category, and a closing recommendation.
func buildExplanation(analysis domain.AnalysisResult) string {
	hasUrgency := false
	hasFinancial := false
	hasAuthority := false
	var critical, high []string
	for _, k := range analysis.DetectedKeywords {
		switch k.Category {
		case "urgency":
			hasUrgency = true
		case "financial":
			hasFinancial = true
		case "authority":
			hasAuthority = true
		}
		switch k.Severity {
		case domain.SeverityCritical:
			critical = append(critical, k.Keyword)
		case domain.SeverityHigh:
			high = append(high, k.Keyword)
		}
	}

	parts := make([]string, 0, 8)

	if analysis.IsMalicious {
		switch {
		case hasUrgency && hasFinancial:
			parts = append(parts, "HIGH RISK: This email combines urgency tactics with financial requests - a classic phishing pattern.")
		case hasAuthority && hasUrgency:
			parts = append(parts, "HIGH RISK: This email impersonates authority figures while creating urgency - likely a scam.")
		case len(critical) > 0:
			parts = append(parts, "CRITICAL RISK: This email contains critical threat indicators.")
		case analysis.RiskScore >= RiskThresholdHigh:
			parts = append(parts, "HIGH RISK: This email shows multiple indicators of malicious intent.")
		default:
			parts = append(parts, "MEDIUM RISK: This email contains suspicious elements that warrant caution.")
		}
	} else if analysis.RiskScore >= RiskThresholdLow {
		parts = append(parts, "LOW RISK: This email has some questionable characteristics.")
	} else {
		parts = append(parts, "This email appears to be legitimate with no significant red flags detected.")
	}

	if len(critical) > 0 {
		parts = append(parts, fmt.Sprintf("Critical indicators: %s", strings.Join(critical, ", ")))
	}
	if len(high) > 0 {
		parts = append(parts, fmt.Sprintf("High-risk indicators: %s", strings.Join(high, ", ")))
	}

	if hasUrgency {
		parts = append(parts, "Urgency tactics detected - legitimate organizations rarely use urgent language.")
	}
	if hasFinancial {
		parts = append(parts, "Financial requests detected - be cautious of any requests for money or account information.")
	}
	if hasAuthority {
		parts = append(parts, "Authority impersonation detected - verify the sender through official channels.")
	}

	switch {
	case analysis.IsMalicious:
		parts = append(parts, "Recommendation: Do not click any links, download attachments, or provide personal information.")
	case analysis.RiskScore >= RiskThresholdLow:
		parts = append(parts, "Recommendation: Exercise caution and verify the sender through official channels.")
	default:
		parts = append(parts, "Recommendation: This email appears safe, but always verify unexpected communications.")
	}

	return strings.Join(parts, " ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
