package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	authdomain "jobtracker-backend/internal/auth/domain"
	"jobtracker-backend/internal/auth/repository"
	"jobtracker-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoEmailScope = "https://www.googleapis.com/auth/userinfo.email"

// UserinfoProvider resolves the authenticated email for a freshly exchanged
// OAuth token.
type UserinfoProvider interface {
	Userinfo(ctx context.Context, token *oauth2.Token) (string, error)
}

// AuthUsecase defines the interface for the authentication flow
type AuthUsecase interface {
	AuthorizationURL() string
	HandleCallback(ctx context.Context, code string) (userID, sessionToken string, err error)
	ResolveOrCreate(email string) (string, error)
	IssueSessionToken(userID, email string) (string, error)
	VerifySessionToken(token string) (userID, email string, err error)
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	credRepo repository.CredentialRepository
	userinfo UserinfoProvider
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, credRepo repository.CredentialRepository, userinfo UserinfoProvider, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		credRepo: credRepo,
		userinfo: userinfo,
		config:   cfg,
	}
}

func (u *authUsecase) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     u.config.GoogleClientID,
		ClientSecret: u.config.GoogleClientSecret,
		RedirectURL:  u.config.RedirectURI(),
		Scopes:       u.scopes(),
		Endpoint:     google.Endpoint,
	}
}

// scopes returns the configured Gmail scopes plus the userinfo.email scope
// the identity resolver depends on.
func (u *authUsecase) scopes() []string {
	scopes := strings.Fields(u.config.GmailScopes)
	for _, s := range scopes {
		if s == userinfoEmailScope {
			return scopes
		}
	}
	return append(scopes, userinfoEmailScope)
}

// AuthorizationURL builds the provider consent URL. Offline access and a
// forced consent prompt ensure a refresh token is issued.
func (u *authUsecase) AuthorizationURL() string {
	return u.oauthConfig().AuthCodeURL(
		uuid.New().String(),
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// HandleCallback exchanges the authorization code, resolves the user's
// identity, persists the credential bundle and mints a session token.
func (u *authUsecase) HandleCallback(ctx context.Context, code string) (string, string, error) {
	cfg := u.oauthConfig()

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", "", errors.New("failed to exchange authorization code: " + err.Error())
	}

	email, err := u.userinfo.Userinfo(ctx, token)
	if err != nil {
		return "", "", err
	}

	userID, err := u.ResolveOrCreate(email)
	if err != nil {
		return "", "", err
	}

	cred := &authdomain.OAuthCredential{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     google.Endpoint.TokenURL,
		ClientID:     u.config.GoogleClientID,
		ClientSecret: u.config.GoogleClientSecret,
		Scopes:       strings.Join(cfg.Scopes, ","),
	}
	if err := u.credRepo.Save(userID, cred); err != nil {
		return "", "", err
	}

	sessionToken, err := u.IssueSessionToken(userID, email)
	if err != nil {
		return "", "", err
	}

	return userID, sessionToken, nil
}

// ResolveOrCreate returns the existing user id for an email or mints a new
// opaque one. Two concurrent first logins for a brand-new email can each
// observe "no mapping" and create distinct ids; the unique index on
// users.email collapses that race at the store, and the benign duplicate is
// accepted on the in-memory fallback.
func (u *authUsecase) ResolveOrCreate(email string) (string, error) {
	user, err := u.userRepo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if user != nil {
		return user.ID, nil
	}

	id, err := newOpaqueID()
	if err != nil {
		return "", err
	}

	user = &authdomain.User{
		ID:    id,
		Email: email,
	}
	if err := u.userRepo.Create(user); err != nil {
		return "", err
	}

	return id, nil
}

func (u *authUsecase) IssueSessionToken(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(u.config.SessionExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.SessionSecret))
}

// VerifySessionToken checks signature and expiry. Any failure means "not
// authenticated"; callers must not turn it into a hard error.
func (u *authUsecase) VerifySessionToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.SessionSecret), nil
	})

	if err != nil || !token.Valid {
		return "", "", errors.New("invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	return userID, email, nil
}

// newOpaqueID mints a 256-bit random identifier in URL-safe encoding.
func newOpaqueID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
