// Package spamscan implements the rule-based email risk analyzer: weighted
// keyword scanning over subject and body, sender heuristics, and the final
// verdict/confidence/threat-type derivation. All functions are pure and
// deterministic so results are reproducible and safe to call concurrently.
package spamscan

// Risk score thresholds. Medium is the malicious cutoff; high and medium
// also drive submission point bonuses.
const (
	RiskThresholdHigh   = 60
	RiskThresholdMedium = 30
	RiskThresholdLow    = 15
)

// Rule is one weighted keyword category. Malicious rules carry positive
// weights; legitimate rules carry negative weights that offset the risk
// score. Keywords are stored lowercase and matched by substring.
type Rule struct {
	Keywords []string
	Weight   int
	Category string
}

// maliciousRules are iterated in fixed order so scan output ordering is
// deterministic.
var maliciousRules = []Rule{
	{
		Category: "urgency",
		Weight:   15,
		Keywords: []string{
			"urgent", "immediately", "asap", "expires", "limited time", "act now",
			"deadline", "final notice", "last chance", "expires today", "hurry",
			"quickly", "right now", "don't delay", "time sensitive", "emergency",
		},
	},
	{
		Category: "financial",
		Weight:   20,
		Keywords: []string{
			"account suspended", "payment required", "billing issue", "overdue",
			"payment failed", "credit card", "bank account", "wire transfer",
			"refund", "invoice", "payment method", "billing address",
			"account locked", "verify payment", "update payment",
		},
	},
	{
		Category: "authority",
		Weight:   18,
		Keywords: []string{
			"microsoft", "apple", "google", "amazon", "paypal", "ebay",
			"irs", "fbi", "police", "court", "legal action", "lawsuit",
			"government", "official", "federal", "tax", "audit",
		},
	},
	{
		Category: "suspicious",
		Weight:   25,
		Keywords: []string{
			"bit.ly", "tinyurl", "goo.gl", "t.co", "click here", "verify now",
			"update now", "confirm now", "click below", "follow link",
			"download", "install", "update software", "security update",
		},
	},
	{
		Category: "personal",
		Weight:   22,
		Keywords: []string{
			"social security", "ssn", "date of birth", "mother's maiden name",
			"password", "username", "login", "account number", "pin",
			"verify identity", "confirm details", "personal information",
		},
	},
	{
		Category: "threats",
		Weight:   20,
		Keywords: []string{
			"account closed", "suspended", "terminated", "legal action",
			"arrest warrant", "fine", "penalty", "consequences", "immediate action",
			"violation", "breach", "unauthorized access", "security breach",
		},
	},
	{
		Category: "offers",
		Weight:   12,
		Keywords: []string{
			"free", "prize", "winner", "congratulations", "claim now",
			"limited offer", "special deal", "exclusive", "bonus",
			"cash prize", "gift card", "voucher", "discount",
		},
	},
	{
		Category: "technical",
		Weight:   16,
		Keywords: []string{
			"virus detected", "malware", "security threat", "system compromised",
			"firewall", "antivirus", "scan", "clean", "repair", "fix",
			"remote access", "technical support", "system administrator",
		},
	},
}

// legitimateRules reduce the risk score when matched. Their matches are
// still reported as keywords so the explanation can cite them.
var legitimateRules = []Rule{
	{
		Category: "legitimate",
		Weight:   -10,
		Keywords: []string{
			"receipt", "order confirmation", "shipping", "delivery",
			"tracking number", "invoice", "statement", "newsletter",
			"unsubscribe", "privacy policy", "terms of service",
		},
	},
	{
		Category: "professional",
		Weight:   -8,
		Keywords: []string{
			"sincerely", "best regards", "thank you", "please contact",
			"customer service", "support team", "business hours",
			"office address", "phone number", "website",
		},
	},
}
