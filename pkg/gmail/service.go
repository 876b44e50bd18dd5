package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	emaildomain "jobtracker-backend/internal/email/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// jobSearchQuery is the Gmail search used to find job-application mail. Broad
// on purpose; the classifier sorts the results into categories afterwards.
const jobSearchQuery = "subject:(application OR interview OR offer OR rejection OR job OR position OR hiring OR career OR resume OR cv) OR from:(noreply OR careers OR jobs OR hiring OR recruit OR talent OR hr OR human.resources)"

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// TokenUpdateFunc is invoked when the underlying token source refreshed the
// access token, so the caller can persist the new token.
type TokenUpdateFunc func(*oauth2.Token) error

type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			fmt.Printf("Failed to update token: %v\n", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// newGmailService creates a Gmail API client from the user's stored tokens.
func (s *Service) newGmailService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) (*gmail.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      config.TokenSource(ctx, token),
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return srv, nil
}

// SearchJobMail lists messages matching the job-search query up to maxResults.
// Each message is fetched in metadata format (Subject, From, Date headers plus
// snippet). A message that cannot be fetched is skipped so one bad record
// never aborts the batch.
func (s *Service) SearchJobMail(ctx context.Context, accessToken, refreshToken string, maxResults int64, onTokenRefresh TokenUpdateFunc) ([]*emaildomain.Message, error) {
	srv, err := s.newGmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = 100
	}

	user := "me"
	ids := make([]string, 0, maxResults)
	pageToken := ""

	// Gmail caps a single list call at 500; page until maxResults is reached
	for int64(len(ids)) < maxResults {
		pageSize := maxResults - int64(len(ids))
		if pageSize > 500 {
			pageSize = 500
		}

		listCall := srv.Users.Messages.List(user).Q(jobSearchQuery).MaxResults(pageSize)
		if pageToken != "" {
			listCall = listCall.PageToken(pageToken)
		}

		resp, err := listCall.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve messages: %v", err)
		}

		for _, msg := range resp.Messages {
			ids = append(ids, msg.Id)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" || len(resp.Messages) == 0 {
			break
		}
	}

	messages := make([]*emaildomain.Message, 0, len(ids))
	for _, id := range ids {
		msg, err := srv.Users.Messages.Get(user, id).
			Format("metadata").
			MetadataHeaders("Subject", "From", "Date").
			Do()
		if err != nil {
			continue
		}

		messages = append(messages, &emaildomain.Message{
			ID:      msg.Id,
			Subject: getHeader(msg.Payload.Headers, "Subject", "No Subject"),
			Snippet: msg.Snippet,
			From:    getHeader(msg.Payload.Headers, "From", "Unknown"),
			Date:    getHeader(msg.Payload.Headers, "Date", ""),
		})
	}

	return messages, nil
}

// GetMessage fetches one message in full format and decodes its body.
func (s *Service) GetMessage(ctx context.Context, accessToken, refreshToken, messageID string, onTokenRefresh TokenUpdateFunc) (*emaildomain.Message, error) {
	srv, err := s.newGmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message: %v", err)
	}

	return &emaildomain.Message{
		ID:      msg.Id,
		Subject: getHeader(msg.Payload.Headers, "Subject", "No Subject"),
		Snippet: msg.Snippet,
		From:    getHeader(msg.Payload.Headers, "From", "Unknown"),
		Date:    getHeader(msg.Payload.Headers, "Date", ""),
		Body:    getMessageBody(msg.Payload),
	}, nil
}

// Userinfo resolves the authenticated user's email address from Google's
// userinfo endpoint using the freshly exchanged token.
func (s *Service) Userinfo(ctx context.Context, token *oauth2.Token) (string, error) {
	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	client := config.Client(ctx, token)
	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return "", fmt.Errorf("unable to fetch userinfo: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("unable to decode userinfo: %v", err)
	}
	if info.Email == "" {
		return "", fmt.Errorf("userinfo response contained no email")
	}

	return info.Email, nil
}

// Helper functions

func getHeader(headers []*gmail.MessagePartHeader, name, fallback string) string {
	for _, header := range headers {
		if header.Name == name {
			return header.Value
		}
	}
	return fallback
}

// getMessageBody prefers the first text/plain part, then falls back to the
// top-level body data.
func getMessageBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	for _, part := range payload.Parts {
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
				return string(data)
			}
		}
	}

	if payload.Body != nil && payload.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			return string(data)
		}
	}

	return ""
}
