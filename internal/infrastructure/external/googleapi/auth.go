package googleapi

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Credentials holds the OAuth material for the single authorized account.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// NewHTTPClient builds an HTTP client that mints access tokens from the
// stored refresh token. The offline refresh token is the only durable secret;
// access tokens are renewed transparently by the token source.
func NewHTTPClient(ctx context.Context, creds Credentials) *http.Client {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/gmail.modify",
			"https://www.googleapis.com/auth/calendar",
		},
		Endpoint: google.Endpoint,
	}

	token := &oauth2.Token{RefreshToken: creds.RefreshToken}
	return oauth2.NewClient(ctx, conf.TokenSource(ctx, token))
}
