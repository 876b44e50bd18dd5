package domain

import "time"

// User maps a verified email address to an opaque user identifier. One id per
// email; the unique index lets Postgres collapse a concurrent first-login race.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// OAuthCredential is the bundle needed to act against the Gmail API on the
// user's behalf. Upserted on every login; RefreshToken may be empty when the
// provider withheld it on repeat consent.
type OAuthCredential struct {
	UserID       string `json:"user_id" gorm:"primaryKey;column:user_id"`
	AccessToken  string `json:"token" gorm:"column:token"`
	RefreshToken string `json:"refresh_token"`
	TokenURI     string `json:"token_uri"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Scopes       string `json:"scopes"` // comma-joined
}

func (OAuthCredential) TableName() string {
	return "user_tokens"
}
