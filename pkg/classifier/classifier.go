package classifier

import "strings"

// Category is one of the four fixed buckets a job-related email can land in.
type Category string

const (
	CategoryApplicationsSent   Category = "applications_sent"
	CategoryRejected           Category = "rejected"
	CategoryInterviewScheduled Category = "interview_scheduled"
	CategoryOfferReceived      Category = "offer_received"
)

// Categories lists every category in priority order. Classification walks this
// list and the first keyword hit wins, so a message carrying both a rejection
// keyword and an interview keyword resolves to whichever category appears
// earlier here. That ordering is part of the contract.
var Categories = []Category{
	CategoryApplicationsSent,
	CategoryRejected,
	CategoryInterviewScheduled,
	CategoryOfferReceived,
}

var categoryKeywords = map[Category][]string{
	CategoryApplicationsSent: {
		"application submitted", "application received", "thank you for applying",
		"application confirmation", "we received your application", "application status",
	},
	CategoryRejected: {
		"unfortunately", "regret to inform", "not moving forward", "not selected",
		"other candidates", "position filled", "rejection", "decline",
	},
	CategoryInterviewScheduled: {
		"interview", "schedule", "meeting", "call", "discussion", "next steps",
		"interview invitation", "interview request",
	},
	CategoryOfferReceived: {
		"offer", "congratulations", "welcome", "job offer", "employment offer",
		"we're excited to offer", "offer letter",
	},
}

// genericProviders are consumer mail domains that never identify an employer.
var genericProviders = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
}

// Classify assigns a category based on subject and snippet/body content.
// Matching is plain case-insensitive substring search, first match wins.
func Classify(subject, content string) Category {
	text := strings.ToLower(subject + " " + content)

	for _, category := range Categories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(text, keyword) {
				return category
			}
		}
	}

	return CategoryApplicationsSent // Default category
}

// ExtractCompany guesses the employer from the sender address or the subject
// line. Returns "" when no candidate is found. Purely syntactic, no lookups.
func ExtractCompany(fromAddr, subject string) string {
	// Try the sender domain first
	addr := mailAddress(fromAddr)
	if at := strings.Index(addr, "@"); at >= 0 {
		domain := strings.ToLower(strings.TrimSpace(addr[at+1:]))
		if domain != "" && !genericProviders[domain] {
			label := strings.SplitN(domain, ".", 2)[0]
			return capitalize(label)
		}
	}

	// Fall back to "Company Name - Job Title" subject patterns
	if before, _, found := strings.Cut(subject, " - "); found {
		return strings.TrimSpace(before)
	}

	return ""
}

// mailAddress pulls the address out of a raw From header such as
// "Acme Careers <careers@acme.com>". A bare address passes through unchanged.
func mailAddress(from string) string {
	if open := strings.Index(from, "<"); open >= 0 {
		if end := strings.Index(from[open:], ">"); end > 0 {
			return from[open+1 : open+end]
		}
	}
	return from
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
