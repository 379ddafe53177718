package domain

import "time"

// CredentialRecord is the stored OAuth credential.
// It is the only durable state in the system and lives in the credential
// store, keyed by a fixed path. The JSON keys match the record format written
// by earlier releases so existing records keep restoring.
type CredentialRecord struct {
	// Token is the OAuth access token.
	Token string `json:"token"`
	// RefreshToken is used to obtain new access tokens without user interaction.
	RefreshToken string `json:"refresh_token"`
	// TokenURI is the provider's token endpoint.
	TokenURI string `json:"token_uri"`
	// ClientID identifies the registered OAuth client.
	ClientID string `json:"client_id"`
	// ClientSecret is the registered client's secret.
	ClientSecret string `json:"client_secret"`
	// Scopes are the scopes the user authorised.
	Scopes []string `json:"scopes"`
	// Expiry is when Token expires. Zero when unknown.
	Expiry time.Time `json:"expiry,omitzero"`
}

// Validate reports whether the record carries enough to rebuild a session.
func (r *CredentialRecord) Validate() error {
	if r == nil || r.ClientID == "" || r.TokenURI == "" {
		return ErrInvalidInput
	}
	if r.Token == "" && r.RefreshToken == "" {
		return ErrInvalidInput
	}
	return nil
}

// HasRefreshToken returns true if a refresh token is available.
func (r *CredentialRecord) HasRefreshToken() bool {
	return r != nil && r.RefreshToken != ""
}

// IsExpired returns true if the access token is known to have expired.
func (r *CredentialRecord) IsExpired() bool {
	if r == nil || r.Expiry.IsZero() {
		return false
	}
	return time.Now().After(r.Expiry)
}

// ShouldRefresh reports whether the access token must be refreshed before
// use: a refresh token exists and the expiry is unknown or already passed.
func (r *CredentialRecord) ShouldRefresh() bool {
	if !r.HasRefreshToken() {
		return false
	}
	return r.Expiry.IsZero() || r.IsExpired()
}
