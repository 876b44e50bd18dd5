package domain

// Message is a raw Gmail message as returned by the provider, before
// classification. Ephemeral; never persisted.
type Message struct {
	ID      string
	Subject string
	Snippet string
	From    string
	Date    string
	Body    string // populated only on full fetches
}

// EmailSummary is a classified message as served by GET /emails.
type EmailSummary struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Snippet  string `json:"snippet"`
	From     string `json:"from_email"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Company  string `json:"company,omitempty"`
	GmailURL string `json:"gmail_url"`
}

// EmailDetail carries the decoded body for GET /emails/:id.
type EmailDetail struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	From     string `json:"from_email"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Company  string `json:"company,omitempty"`
	GmailURL string `json:"gmail_url"`
}

// DashboardStats aggregates classified mail into per-category counts. All
// four categories are always present, zero-filled when empty.
type DashboardStats struct {
	TotalApplications  int            `json:"total_applications"`
	ApplicationsSent   int            `json:"applications_sent"`
	Rejected           int            `json:"rejected"`
	InterviewScheduled int            `json:"interview_scheduled"`
	OfferReceived      int            `json:"offer_received"`
	Categories         map[string]int `json:"categories"`
}
