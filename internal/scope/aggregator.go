// Package scope aggregates a user's profile and repository list into a
// single result. The two fetches run as concurrent siblings and are both
// awaited before merging; a profile error always wins over the repository
// outcome.
package scope

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/drpaneas/gitscope/internal/ghfetch"
	"github.com/drpaneas/gitscope/internal/outcome"
	"golang.org/x/sync/errgroup"
)

const msgEmptyUserID = "User ID cannot be empty"

// UserWithRepositories is the merged result of one lookup: the profile,
// the repositories in server order, and the derived fork total.
type UserWithRepositories struct {
	User         ghfetch.User
	Repositories []ghfetch.Repository
	TotalForks   int
}

// Aggregator orchestrates the concurrent profile and repository fetches.
// It is stateless and safe for concurrent use.
type Aggregator struct {
	fetcher ghfetch.Fetcher
}

// New returns an Aggregator backed by the given fetcher.
func New(fetcher ghfetch.Fetcher) *Aggregator {
	return &Aggregator{fetcher: fetcher}
}

// User validates and trims userID, then fetches the profile alone.
func (a *Aggregator) User(ctx context.Context, userID string) (outcome.Outcome[ghfetch.User], error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return outcome.Fail[ghfetch.User](msgEmptyUserID), nil
	}
	return a.fetcher.FetchUser(ctx, id)
}

// Repositories validates and trims userID, then fetches the repository
// list alone.
func (a *Aggregator) Repositories(ctx context.Context, userID string) (outcome.Outcome[[]ghfetch.Repository], error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return outcome.Fail[[]ghfetch.Repository](msgEmptyUserID), nil
	}
	return a.fetcher.FetchRepositories(ctx, id)
}

// UserWithRepositories fetches the profile and repository list concurrently
// and merges them. Blank input short-circuits before any network call. Both
// sub-fetches always run to completion; the merge is deterministic no matter
// which finishes first. Cancellation propagates as the returned error.
func (a *Aggregator) UserWithRepositories(ctx context.Context, userID string) (outcome.Outcome[UserWithRepositories], error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return outcome.Fail[UserWithRepositories](msgEmptyUserID), nil
	}

	var (
		userRes outcome.Outcome[ghfetch.User]
		repoRes outcome.Outcome[[]ghfetch.Repository]
	)
	// The fetcher only returns errors for cancellation and uncaught faults,
	// so the group never cuts short a healthy sibling fetch.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userRes, err = a.fetcher.FetchUser(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		repoRes, err = a.fetcher.FetchRepositories(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return classifyFault(err)
	}

	switch {
	case userRes.IsError():
		return outcome.Fail[UserWithRepositories](userRes.Message()), nil
	case repoRes.IsError():
		return outcome.Fail[UserWithRepositories](repoRes.Message()), nil
	case userRes.IsSuccess() && repoRes.IsSuccess():
		repos := repoRes.Value()
		return outcome.OK(UserWithRepositories{
			User:         userRes.Value(),
			Repositories: repos,
			TotalForks:   TotalForks(repos),
		}), nil
	default:
		// Unreachable as long as the fetcher honors its contract.
		return outcome.Fail[UserWithRepositories]("Unexpected error occurred"), nil
	}
}

func classifyFault(err error) (outcome.Outcome[UserWithRepositories], error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return outcome.Outcome[UserWithRepositories]{}, err
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return outcome.Fail[UserWithRepositories]("No internet connection"), nil
	}
	msg := err.Error()
	if msg == "" {
		msg = "Operation failed"
	}
	return outcome.Fail[UserWithRepositories](msg), nil
}
