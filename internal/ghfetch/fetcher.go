// Package ghfetch wraps the GitHub REST API behind a small data-access
// layer. It maps raw responses into domain values and classifies every
// transport or HTTP failure into a fixed set of human-readable error
// messages; higher layers treat those messages as opaque.
package ghfetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/drpaneas/gitscope/internal/outcome"
	"github.com/google/go-github/v68/github"
)

// Fetcher is the seam between the data-access layer and its consumers.
// Both operations report domain failures inside the Outcome; the error
// return is reserved for context cancellation, which must propagate
// instead of being flattened into a message.
type Fetcher interface {
	FetchUser(ctx context.Context, userID string) (outcome.Outcome[User], error)
	FetchRepositories(ctx context.Context, userID string) (outcome.Outcome[[]Repository], error)
}

// Client fetches user profiles and repository lists from GitHub.
type Client struct {
	gh *github.Client
}

var _ Fetcher = (*Client)(nil)

// FetchUser retrieves the profile for userID. The id is used as given;
// trimming and blank checks belong to the caller.
func (c *Client) FetchUser(ctx context.Context, userID string) (outcome.Outcome[User], error) {
	user, _, err := c.gh.Users.Get(ctx, userID)
	if err != nil {
		return classify[User](ctx, err, userStatusMessage)
	}
	if user == nil || user.Name == nil || user.AvatarURL == nil {
		return outcome.Fail[User]("Invalid user response"), nil
	}
	return outcome.OK(User{
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
	}), nil
}

// FetchRepositories retrieves userID's repositories in server order.
// Records missing a required field are dropped rather than failing the
// whole list.
func (c *Client) FetchRepositories(ctx context.Context, userID string) (outcome.Outcome[[]Repository], error) {
	repos, _, err := c.gh.Repositories.ListByUser(ctx, userID, nil)
	if err != nil {
		return classify[[]Repository](ctx, err, repoStatusMessage)
	}

	result := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if repo.Name == nil || repo.UpdatedAt == nil ||
			repo.StargazersCount == nil || repo.ForksCount == nil {
			slog.Debug("dropping incomplete repository record", "user", userID)
			continue
		}
		result = append(result, Repository{
			Name:            repo.GetName(),
			Description:     repo.GetDescription(),
			UpdatedAt:       repo.GetUpdatedAt().Time.Format(time.RFC3339),
			StargazersCount: repo.GetStargazersCount(),
			ForksCount:      repo.GetForksCount(),
		})
	}
	return outcome.OK(result), nil
}

func userStatusMessage(code int) string {
	switch code {
	case 404:
		return "User not found"
	case 403, 429:
		return "API rate limit exceeded"
	default:
		return fmt.Sprintf("Something went wrong: %d", code)
	}
}

func repoStatusMessage(code int) string {
	return fmt.Sprintf("Failed to fetch repositories: %d", code)
}

// classify turns a go-github call failure into either a propagated
// cancellation or an Error outcome. statusMessage renders non-2xx codes;
// everything else falls into the connectivity or generic buckets.
func classify[T any](ctx context.Context, err error, statusMessage func(int) string) (outcome.Outcome[T], error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return outcome.Outcome[T]{}, err
	}
	if cerr := ctx.Err(); cerr != nil {
		return outcome.Outcome[T]{}, cerr
	}
	if code, ok := statusCode(err); ok {
		return outcome.Fail[T](statusMessage(code)), nil
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return outcome.Fail[T]("No internet connection"), nil
	}
	return outcome.Failf[T]("Something went wrong: %v", err), nil
}

// statusCode extracts the HTTP status behind the error shapes go-github
// produces for non-2xx responses.
func statusCode(err error) (int, bool) {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode, true
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return rateErr.Response.StatusCode, true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return abuseErr.Response.StatusCode, true
	}
	return 0, false
}
