package spamscan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

func TestAnalyzeEmail_PhishingEmail(t *testing.T) {
	content := domain.EmailContent{
		Subject:     "URGENT: Verify Your Account",
		Sender:      "Security Team",
		SenderEmail: "security@bank-verify.com",
		Body:        "Please click here to verify your account. Complete the wire transfer today.",
	}

	analysis := AnalyzeEmail(content)

	assert.True(t, analysis.IsMalicious)
	assert.Equal(t, 68, analysis.RiskScore) // urgent 15 + click here 25 + wire transfer 20 + sender 8
	assert.Equal(t, 100, analysis.Confidence)
	assert.Equal(t, domain.ThreatPhishing, analysis.ThreatType)
	assert.Len(t, analysis.DetectedKeywords, 4)
	assert.Contains(t, analysis.Explanation, "combines urgency tactics with financial requests")
	assert.Contains(t, analysis.Explanation, "Recommendation: Do not click any links")
}

func TestAnalyzeEmail_LegitimateEmail(t *testing.T) {
	content := domain.EmailContent{
		Subject:     "Your delivery confirmation",
		Sender:      "UPS",
		SenderEmail: "noreply@ups.com",
		Body:        "Your package with tracking number 1Z999 was delivered today. Thank you for choosing UPS.",
	}

	analysis := AnalyzeEmail(content)

	assert.False(t, analysis.IsMalicious)
	assert.Equal(t, 0, analysis.RiskScore) // negative raw score clamps to zero
	assert.Equal(t, 20, analysis.Confidence)
	assert.Equal(t, domain.ThreatLegitimate, analysis.ThreatType)
	assert.Contains(t, analysis.Explanation, "appears to be legitimate")
	assert.Contains(t, analysis.Explanation, "Recommendation: This email appears safe")
}

func TestAnalyzeEmail_NoSignalsDefaultsToSpam(t *testing.T) {
	content := domain.EmailContent{
		Subject:     "hello",
		Sender:      "Bob",
		SenderEmail: "bob@corp.net",
		Body:        "lunch tomorrow?",
	}

	analysis := AnalyzeEmail(content)

	assert.False(t, analysis.IsMalicious)
	assert.Equal(t, 0, analysis.RiskScore)
	assert.Equal(t, domain.ThreatSpam, analysis.ThreatType)
	assert.Empty(t, analysis.DetectedKeywords)
}

func TestAnalyzeEmail_RiskScoreClampedAt100(t *testing.T) {
	content := domain.EmailContent{
		Subject:     "URGENT security update",
		Sender:      "Administrator",
		SenderEmail: "admin@gmail.com",
		Body:        "Click here, verify now, update now, confirm now, download, install. Your password, login, ssn and pin are needed for the wire transfer.",
	}

	analysis := AnalyzeEmail(content)

	assert.True(t, analysis.IsMalicious)
	assert.Equal(t, 100, analysis.RiskScore)
	assert.Equal(t, 100, analysis.Confidence)
}

func TestAnalyzeEmail_AuthorityImpersonation(t *testing.T) {
	content := domain.EmailContent{
		Subject:     "urgent",
		Sender:      "Bob",
		SenderEmail: "bob@corp.net",
		Body:        "a notice from Microsoft",
	}

	analysis := AnalyzeEmail(content)

	assert.True(t, analysis.IsMalicious)
	assert.Contains(t, analysis.Explanation, "impersonates authority figures")
	assert.Contains(t, analysis.Explanation, "Authority impersonation detected")
	assert.Contains(t, analysis.Explanation, "Urgency tactics detected")
}

func TestAnalyzeEmail_CriticalIndicatorsListed(t *testing.T) {
	content := domain.EmailContent{
		Subject:     "",
		Sender:      "Bob",
		SenderEmail: "bob@corp.net",
		Body:        "click here",
	}

	analysis := AnalyzeEmail(content)

	assert.True(t, analysis.IsMalicious)
	assert.Contains(t, analysis.Explanation, "CRITICAL RISK")
	assert.Contains(t, analysis.Explanation, "Critical indicators: click here")
}

func TestAnalyzeEmail_LowRiskTier(t *testing.T) {
	// Sender heuristics only: admin (10) + security (8) stay below the
	// malicious cutoff but above the low-risk floor.
	content := domain.EmailContent{
		Subject:     "hello",
		Sender:      "Security Alert",
		SenderEmail: "admin@secure-mail.net",
		Body:        "lunch tomorrow?",
	}

	analysis := AnalyzeEmail(content)

	assert.False(t, analysis.IsMalicious)
	assert.Equal(t, 18, analysis.RiskScore)
	assert.Contains(t, analysis.Explanation, "LOW RISK")
	assert.Contains(t, analysis.Explanation, "Recommendation: Exercise caution")
}

func TestClassifyThreat(t *testing.T) {
	kw := func(category string) domain.KeywordMatch {
		return domain.KeywordMatch{Keyword: "x", Category: category, Severity: domain.SeverityMedium}
	}

	tests := []struct {
		name     string
		keywords []domain.KeywordMatch
		expected domain.ThreatType
	}{
		{
			name:     "No keywords defaults to spam",
			keywords: nil,
			expected: domain.ThreatSpam,
		},
		{
			name:     "Majority wins",
			keywords: []domain.KeywordMatch{kw("technical"), kw("technical"), kw("threats")},
			expected: domain.ThreatMalware,
		},
		{
			name:     "Tie resolved by priority order",
			keywords: []domain.KeywordMatch{kw("urgency"), kw("financial")},
			expected: domain.ThreatPhishing,
		},
		{
			name:     "Offers outnumber authority",
			keywords: []domain.KeywordMatch{kw("offers"), kw("offers"), kw("authority")},
			expected: domain.ThreatScam,
		},
		{
			name:     "Sender-only maps to spam",
			keywords: []domain.KeywordMatch{kw("sender")},
			expected: domain.ThreatSpam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyThreat(tt.keywords))
		})
	}
}
