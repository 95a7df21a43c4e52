package ghfetch

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

func newGitHubClient(token string) *github.Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient.Transport = &oauth2.Transport{
			Source: ts,
			Base:   http.DefaultTransport,
		}
	}
	return github.NewClient(httpClient)
}

// New returns a Client talking to api.github.com. An empty token means
// unauthenticated requests (lower rate limits, but functional).
func New(token string) *Client {
	return &Client{gh: newGitHubClient(token)}
}

// NewWithBaseURL returns a Client pointed at a different API root, for
// GitHub Enterprise installs and tests. baseURL must parse as a URL.
func NewWithBaseURL(token, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c := New(token)
	c.gh.BaseURL = u
	return c, nil
}

// NewFromClient wraps an already-configured go-github client.
func NewFromClient(gh *github.Client) *Client {
	return &Client{gh: gh}
}
