package usecase

import (
	"context"
	"errors"
	"strings"

	authdomain "jobtracker-backend/internal/auth/domain"
	"jobtracker-backend/internal/auth/repository"
	emaildomain "jobtracker-backend/internal/email/domain"
	"jobtracker-backend/pkg/classifier"
	"jobtracker-backend/pkg/gmail"

	"golang.org/x/oauth2"
)

// ErrNotAuthenticated means no credential bundle is stored for the user.
var ErrNotAuthenticated = errors.New("user not authenticated")

const (
	gmailURLPrefix   = "https://mail.google.com/mail/u/0/#inbox/"
	statsMaxMessages = 1000
)

// MailProvider is the external email collaborator. *gmail.Service satisfies it.
type MailProvider interface {
	SearchJobMail(ctx context.Context, accessToken, refreshToken string, maxResults int64, onTokenRefresh gmail.TokenUpdateFunc) ([]*emaildomain.Message, error)
	GetMessage(ctx context.Context, accessToken, refreshToken, messageID string, onTokenRefresh gmail.TokenUpdateFunc) (*emaildomain.Message, error)
}

// EmailUsecase defines the interface for classified email retrieval
type EmailUsecase interface {
	GetEmails(ctx context.Context, userID string, maxResults int64, category, company string) ([]*emaildomain.EmailSummary, error)
	GetEmailDetail(ctx context.Context, userID, emailID string) (*emaildomain.EmailDetail, error)
	GetDashboardStats(ctx context.Context, userID string) (*emaildomain.DashboardStats, error)
}

// emailUsecase implements EmailUsecase interface
type emailUsecase struct {
	credRepo repository.CredentialRepository
	mail     MailProvider
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(credRepo repository.CredentialRepository, mail MailProvider) EmailUsecase {
	return &emailUsecase{
		credRepo: credRepo,
		mail:     mail,
	}
}

// GetEmails fetches job mail, classifies each message and applies the
// optional category (exact) and company (case-insensitive substring) filters.
func (u *emailUsecase) GetEmails(ctx context.Context, userID string, maxResults int64, category, company string) ([]*emaildomain.EmailSummary, error) {
	cred, err := u.credentials(userID)
	if err != nil {
		return nil, err
	}

	messages, err := u.mail.SearchJobMail(ctx, cred.AccessToken, cred.RefreshToken, maxResults, u.tokenSaver(userID, cred))
	if err != nil {
		return nil, err
	}

	emails := make([]*emaildomain.EmailSummary, 0, len(messages))
	for _, msg := range messages {
		summary := &emaildomain.EmailSummary{
			ID:       msg.ID,
			Subject:  msg.Subject,
			Snippet:  msg.Snippet,
			From:     msg.From,
			Date:     msg.Date,
			Category: string(classifier.Classify(msg.Subject, msg.Snippet)),
			Company:  classifier.ExtractCompany(msg.From, msg.Subject),
			GmailURL: gmailURLPrefix + msg.ID,
		}

		if category != "" && summary.Category != category {
			continue
		}
		if company != "" {
			if summary.Company == "" || !strings.Contains(strings.ToLower(summary.Company), strings.ToLower(company)) {
				continue
			}
		}

		emails = append(emails, summary)
	}

	return emails, nil
}

// GetEmailDetail fetches one message in full, with decoded body.
func (u *emailUsecase) GetEmailDetail(ctx context.Context, userID, emailID string) (*emaildomain.EmailDetail, error) {
	cred, err := u.credentials(userID)
	if err != nil {
		return nil, err
	}

	msg, err := u.mail.GetMessage(ctx, cred.AccessToken, cred.RefreshToken, emailID, u.tokenSaver(userID, cred))
	if err != nil {
		return nil, err
	}

	return &emaildomain.EmailDetail{
		ID:       msg.ID,
		Subject:  msg.Subject,
		Body:     msg.Body,
		From:     msg.From,
		Date:     msg.Date,
		Category: string(classifier.Classify(msg.Subject, msg.Body)),
		Company:  classifier.ExtractCompany(msg.From, msg.Subject),
		GmailURL: gmailURLPrefix + msg.ID,
	}, nil
}

// GetDashboardStats classifies up to 1000 messages and tallies them.
func (u *emailUsecase) GetDashboardStats(ctx context.Context, userID string) (*emaildomain.DashboardStats, error) {
	emails, err := u.GetEmails(ctx, userID, statsMaxMessages, "", "")
	if err != nil {
		return nil, err
	}

	return Aggregate(emails), nil
}

// Aggregate tallies classified emails into per-category counts in one pass.
// All four categories are always present, zero when unobserved.
func Aggregate(emails []*emaildomain.EmailSummary) *emaildomain.DashboardStats {
	counts := map[string]int{}
	for _, category := range classifier.Categories {
		counts[string(category)] = 0
	}

	for _, email := range emails {
		counts[email.Category]++
	}

	return &emaildomain.DashboardStats{
		TotalApplications:  len(emails),
		ApplicationsSent:   counts[string(classifier.CategoryApplicationsSent)],
		Rejected:           counts[string(classifier.CategoryRejected)],
		InterviewScheduled: counts[string(classifier.CategoryInterviewScheduled)],
		OfferReceived:      counts[string(classifier.CategoryOfferReceived)],
		Categories:         counts,
	}
}

// credentials loads the stored bundle, translating "none" into the 401 error.
func (u *emailUsecase) credentials(userID string) (*authdomain.OAuthCredential, error) {
	cred, err := u.credRepo.Find(userID)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrNotAuthenticated
	}
	return cred, nil
}

// tokenSaver persists a refreshed access token back into the credential
// store so the next request does not refresh again.
func (u *emailUsecase) tokenSaver(userID string, cred *authdomain.OAuthCredential) gmail.TokenUpdateFunc {
	return func(t *oauth2.Token) error {
		cred.AccessToken = t.AccessToken
		if t.RefreshToken != "" {
			cred.RefreshToken = t.RefreshToken
		}
		return u.credRepo.Save(userID, cred)
	}
}
