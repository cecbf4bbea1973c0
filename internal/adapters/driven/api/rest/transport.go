package rest

import (
	"net/http"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
)

// sessionTransport attaches the session token as a bearer credential.
// The token is read from the provider on every request so a cleared or
// replaced session takes effect immediately.
type sessionTransport struct {
	provider driven.TokenProvider
	base     http.RoundTripper
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.provider.GetToken(req.Context())
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}
	inner := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   t.base,
	}
	return inner.RoundTrip(req)
}
