package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	authdomain "jobtracker-backend/internal/auth/domain"
	"jobtracker-backend/internal/auth/repository"
	emaildomain "jobtracker-backend/internal/email/domain"
	"jobtracker-backend/internal/email/usecase"
	"jobtracker-backend/pkg/gmail"

	"github.com/stretchr/testify/require"
)

// fakeMailProvider serves canned messages instead of calling the Gmail API.
type fakeMailProvider struct {
	messages []*emaildomain.Message
	err      error
	calls    int
}

func (f *fakeMailProvider) SearchJobMail(ctx context.Context, accessToken, refreshToken string, maxResults int64, onTokenRefresh gmail.TokenUpdateFunc) ([]*emaildomain.Message, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if maxResults > 0 && int64(len(f.messages)) > maxResults {
		return f.messages[:maxResults], nil
	}
	return f.messages, nil
}

func (f *fakeMailProvider) GetMessage(ctx context.Context, accessToken, refreshToken, messageID string, onTokenRefresh gmail.TokenUpdateFunc) (*emaildomain.Message, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, msg := range f.messages {
		if msg.ID == messageID {
			return msg, nil
		}
	}
	return nil, errors.New("message not found")
}

func authenticatedCredRepo(t *testing.T, userID string) repository.CredentialRepository {
	t.Helper()
	repo := repository.NewCredentialRepository(nil)
	require.NoError(t, repo.Save(userID, &authdomain.OAuthCredential{
		AccessToken:  "access",
		RefreshToken: "refresh",
	}))
	return repo
}

// syntheticMessages builds 10 messages: 4 application confirmations, 3
// rejections, 2 interview invitations, 1 offer.
func syntheticMessages() []*emaildomain.Message {
	msgs := []*emaildomain.Message{}

	for i := 0; i < 4; i++ {
		msgs = append(msgs, &emaildomain.Message{
			ID:      fmt.Sprintf("app-%d", i),
			Subject: "Thank you for applying",
			Snippet: "We received your resume.",
			From:    fmt.Sprintf("careers@company%d.com", i),
			Date:    "Mon, 01 Sep 2025 10:00:00 +0000",
		})
	}
	for i := 0; i < 3; i++ {
		msgs = append(msgs, &emaildomain.Message{
			ID:      fmt.Sprintf("rej-%d", i),
			Subject: "Update on your candidacy",
			Snippet: "Unfortunately we went with other candidates.",
			From:    "talent@initech.com",
			Date:    "Tue, 02 Sep 2025 10:00:00 +0000",
		})
	}
	for i := 0; i < 2; i++ {
		msgs = append(msgs, &emaildomain.Message{
			ID:      fmt.Sprintf("int-%d", i),
			Subject: "Interview invitation",
			Snippet: "We would like to set up a time with you.",
			From:    "recruiting@hooli.com",
			Date:    "Wed, 03 Sep 2025 10:00:00 +0000",
		})
	}
	msgs = append(msgs, &emaildomain.Message{
		ID:      "off-0",
		Subject: "Your employment offer",
		Snippet: "We're excited to extend this to you.",
		From:    "hr@acme.com",
		Date:    "Thu, 04 Sep 2025 10:00:00 +0000",
	})

	return msgs
}

func TestGetEmailsRequiresCredentials(t *testing.T) {
	provider := &fakeMailProvider{}
	uc := usecase.NewEmailUsecase(repository.NewCredentialRepository(nil), provider)

	_, err := uc.GetEmails(context.Background(), "stranger", 100, "", "")
	require.ErrorIs(t, err, usecase.ErrNotAuthenticated)
	require.Zero(t, provider.calls, "provider must not be called without credentials")
}

func TestGetEmailsClassifiesAndFilters(t *testing.T) {
	provider := &fakeMailProvider{messages: syntheticMessages()}
	uc := usecase.NewEmailUsecase(authenticatedCredRepo(t, "user-1"), provider)

	t.Run("all messages classified", func(t *testing.T) {
		emails, err := uc.GetEmails(context.Background(), "user-1", 100, "", "")
		require.NoError(t, err)
		require.Len(t, emails, 10)
		for _, email := range emails {
			require.NotEmpty(t, email.Category)
			require.Equal(t, "https://mail.google.com/mail/u/0/#inbox/"+email.ID, email.GmailURL)
		}
	})

	t.Run("category filter is exact", func(t *testing.T) {
		emails, err := uc.GetEmails(context.Background(), "user-1", 100, "rejected", "")
		require.NoError(t, err)
		require.Len(t, emails, 3)
		for _, email := range emails {
			require.Equal(t, "rejected", email.Category)
		}
	})

	t.Run("company filter is a case-insensitive substring", func(t *testing.T) {
		emails, err := uc.GetEmails(context.Background(), "user-1", 100, "", "INITECH")
		require.NoError(t, err)
		require.Len(t, emails, 3)
		for _, email := range emails {
			require.Equal(t, "Initech", email.Company)
		}
	})

	t.Run("company filter skips records without a company", func(t *testing.T) {
		provider := &fakeMailProvider{messages: []*emaildomain.Message{{
			ID:      "m-1",
			Subject: "Generic subject",
			From:    "x@yahoo.com",
		}}}
		uc := usecase.NewEmailUsecase(authenticatedCredRepo(t, "user-1"), provider)

		emails, err := uc.GetEmails(context.Background(), "user-1", 100, "", "acme")
		require.NoError(t, err)
		require.Empty(t, emails)
	})
}

func TestGetEmailDetail(t *testing.T) {
	provider := &fakeMailProvider{messages: []*emaildomain.Message{{
		ID:      "msg-1",
		Subject: "Acme Corp - Software Engineer",
		From:    "noreply@gmail.com",
		Date:    "Fri, 05 Sep 2025 10:00:00 +0000",
		Body:    "We would like to schedule an interview next week.",
	}}}
	uc := usecase.NewEmailUsecase(authenticatedCredRepo(t, "user-1"), provider)

	detail, err := uc.GetEmailDetail(context.Background(), "user-1", "msg-1")
	require.NoError(t, err)
	require.Equal(t, "msg-1", detail.ID)
	require.Equal(t, "interview_scheduled", detail.Category)
	require.Equal(t, "Acme Corp", detail.Company)
	require.Equal(t, "We would like to schedule an interview next week.", detail.Body)

	_, err = uc.GetEmailDetail(context.Background(), "user-1", "missing")
	require.Error(t, err)
}

func TestAggregate(t *testing.T) {
	t.Run("empty input reports all four categories at zero", func(t *testing.T) {
		stats := usecase.Aggregate(nil)
		require.Zero(t, stats.TotalApplications)
		require.Zero(t, stats.ApplicationsSent)
		require.Zero(t, stats.Rejected)
		require.Zero(t, stats.InterviewScheduled)
		require.Zero(t, stats.OfferReceived)
		require.Len(t, stats.Categories, 4)
		for _, count := range stats.Categories {
			require.Zero(t, count)
		}
	})
}

func TestGetDashboardStats(t *testing.T) {
	provider := &fakeMailProvider{messages: syntheticMessages()}
	uc := usecase.NewEmailUsecase(authenticatedCredRepo(t, "user-1"), provider)

	stats, err := uc.GetDashboardStats(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, 10, stats.TotalApplications)
	require.Equal(t, 4, stats.ApplicationsSent)
	require.Equal(t, 3, stats.Rejected)
	require.Equal(t, 2, stats.InterviewScheduled)
	require.Equal(t, 1, stats.OfferReceived)
	require.Equal(t, map[string]int{
		"applications_sent":   4,
		"rejected":            3,
		"interview_scheduled": 2,
		"offer_received":      1,
	}, stats.Categories)
}

func TestGetDashboardStatsWithoutCredentials(t *testing.T) {
	uc := usecase.NewEmailUsecase(repository.NewCredentialRepository(nil), &fakeMailProvider{})

	_, err := uc.GetDashboardStats(context.Background(), "stranger")
	require.ErrorIs(t, err, usecase.ErrNotAuthenticated)
}
