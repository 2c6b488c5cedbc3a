package toggl

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// apiTokenPassword is the fixed password Toggl expects when the username is
// an API token.
const apiTokenPassword = "api_token"

// authTransport wraps the base transport so that every request carries the
// basic-auth credentials. The credentials never change during the process
// lifetime, so a static token source is sufficient.
func (c *Client) authTransport() (http.RoundTripper, error) {
	user, pass := c.Email, c.Password
	if c.APIToken != "" {
		user, pass = c.APIToken, apiTokenPassword
	}

	if user == "" {
		return nil, fmt.Errorf("no credentials configured")
	}

	token := &oauth2.Token{
		AccessToken: base64.StdEncoding.EncodeToString([]byte(user + ":" + pass)),
		TokenType:   "Basic",
	}

	return &oauth2.Transport{
		Source: oauth2.StaticTokenSource(token),
		Base:   c.Transport,
	}, nil
}
