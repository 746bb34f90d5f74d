package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cyberacademy/awareness-platform/internal/domain"
)

// SeedSource implements ports.ContentSource with built-in training content.
// For this prototype the catalog is compiled in; a production deployment
// would fetch it from a CMS or content API behind the same port.
type SeedSource struct{}

// NewSeedSource creates a new built-in content source
func NewSeedSource() *SeedSource {
	return &SeedSource{}
}

// Simulations returns the built-in simulation catalog
func (c *SeedSource) Simulations(ctx context.Context) ([]domain.Simulation, error) {
	now := time.Now()

	sims := []domain.Simulation{
		{
			ModuleID:    domain.ModulePhishingSpotter,
			Title:       "Payroll update request",
			Difficulty:  "beginner",
			Points:      20,
			IsMalicious: true,
			Content:     "HR Portal <hr-update@payroll-secure-portal.com>: Your direct deposit details need to be re-verified before the next pay run. Click here to confirm your account.",
			Explanation: "The sender domain is not your company's, and direct deposit changes are never requested by email link.",
		},
		{
			ModuleID:    domain.ModulePhishingSpotter,
			Title:       "Quarterly newsletter",
			Difficulty:  "beginner",
			Points:      15,
			IsMalicious: false,
			Content:     "Marketing Team <newsletter@yourcompany.com>: Here is the Q3 newsletter. You can unsubscribe at any time using the link in the footer.",
			Explanation: "Internal sender, no credential or payment request, and a standard unsubscribe footer.",
		},
		{
			ModuleID:    domain.ModulePhishingSpotter,
			Title:       "Invoice overdue - wire today",
			Difficulty:  "advanced",
			Points:      30,
			IsMalicious: true,
			Content:     "Accounts <billing@suppl1er-invoices.net>: Final notice. Invoice #8841 is overdue. Wire transfer must be completed today to avoid legal action.",
			Explanation: "Urgency plus a wire transfer demand from a look-alike supplier domain is classic invoice fraud.",
		},
		{
			ModuleID:    domain.ModuleScamRecognizer,
			Title:       "Bank fraud department call",
			Difficulty:  "intermediate",
			Points:      25,
			IsMalicious: true,
			Content:     "Caller claims to be your bank's fraud department and asks you to read out the one-time code just sent to your phone.",
			Explanation: "Banks never ask for one-time codes. The code is what the caller needs to take over your account.",
		},
		{
			ModuleID:    domain.ModuleScamRecognizer,
			Title:       "Delivery reschedule text",
			Difficulty:  "beginner",
			Points:      20,
			IsMalicious: true,
			Content:     "SMS: Your package could not be delivered. Pay a $1.99 redelivery fee at http://bit.ly/redeliver-now",
			Explanation: "Carriers do not charge redelivery fees by text, and the shortened link hides the real destination.",
		},
		{
			ModuleID:    domain.ModuleScamRecognizer,
			Title:       "Appointment reminder call",
			Difficulty:  "beginner",
			Points:      15,
			IsMalicious: false,
			Content:     "Automated call from your dentist's known number reminding you of tomorrow's appointment, no information requested.",
			Explanation: "Known number, no request for personal or payment information.",
		},
		{
			ModuleID:    domain.ModuleMFASetup,
			Title:       "Authenticator app enrollment",
			Difficulty:  "beginner",
			Points:      20,
			IsMalicious: false,
			Content:     "Walk through enrolling an authenticator app: scan the QR code, store the backup codes, confirm with a generated code.",
			Explanation: "App-based codes resist SIM swapping; backup codes belong in a password manager, not a screenshot.",
		},
		{
			ModuleID:    domain.ModuleMFASetup,
			Title:       "Unexpected MFA prompt",
			Difficulty:  "intermediate",
			Points:      25,
			IsMalicious: true,
			Content:     "You receive a push notification asking to approve a sign-in you did not initiate.",
			Explanation: "Approving unexpected prompts is how MFA fatigue attacks succeed. Deny and change your password.",
		},
	}

	for i := range sims {
		sims[i].ID = uuid.New()
		sims[i].CreatedAt = now
	}
	return sims, nil
}

// SampleEmails returns example emails for exercising the spam analyzer
func (c *SeedSource) SampleEmails(ctx context.Context) ([]domain.EmailContent, error) {
	now := time.Now()

	return []domain.EmailContent{
		{
			Subject:      "URGENT: Verify Your Account Information",
			Sender:       "Security Department",
			SenderEmail:  "security@bank-verify-now.com",
			Body:         "Your account has been flagged. Please click here to verify your identity and confirm your wire transfer details within 24 hours.",
			ReceivedDate: now.Add(-2 * time.Hour),
		},
		{
			Subject:      "Your package has been delivered",
			Sender:       "UPS",
			SenderEmail:  "noreply@ups.com",
			Body:         "Your package with tracking number 1Z999AA10123456784 was delivered today. Thank you for choosing UPS.",
			ReceivedDate: now.Add(-26 * time.Hour),
		},
		{
			Subject:      "Congratulations! You are a winner",
			Sender:       "Prize Committee",
			SenderEmail:  "claims@lucky-draw-intl.com",
			Body:         "You have won a cash prize of $10,000. Claim now by sending your bank account details. Limited time offer, act now!",
			ReceivedDate: now.Add(-3 * 24 * time.Hour),
		},
	}, nil
}
