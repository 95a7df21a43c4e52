package scope_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"

	"github.com/drpaneas/gitscope/internal/ghfetch"
	"github.com/drpaneas/gitscope/internal/outcome"
	"github.com/drpaneas/gitscope/internal/scope"
)

type mockFetcher struct {
	userFn  func(ctx context.Context, userID string) (outcome.Outcome[ghfetch.User], error)
	reposFn func(ctx context.Context, userID string) (outcome.Outcome[[]ghfetch.Repository], error)

	userCalls  atomic.Int64
	repoCalls  atomic.Int64
	lastUserID atomic.Value
}

func (m *mockFetcher) FetchUser(ctx context.Context, userID string) (outcome.Outcome[ghfetch.User], error) {
	m.userCalls.Add(1)
	m.lastUserID.Store(userID)
	if m.userFn != nil {
		return m.userFn(ctx, userID)
	}
	return outcome.OK(ghfetch.User{Name: "The Octocat", AvatarURL: "https://example.com/a.png"}), nil
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, userID string) (outcome.Outcome[[]ghfetch.Repository], error) {
	m.repoCalls.Add(1)
	if m.reposFn != nil {
		return m.reposFn(ctx, userID)
	}
	return outcome.OK([]ghfetch.Repository{}), nil
}

func twoRepos() []ghfetch.Repository {
	return []ghfetch.Repository{
		{Name: "repo1", Description: "desc1", UpdatedAt: "2025-09-20T00:00:00Z", StargazersCount: 100, ForksCount: 100},
		{Name: "repo2", Description: "desc2", UpdatedAt: "2025-09-20T00:00:00Z", StargazersCount: 200, ForksCount: 200},
	}
}

func TestUserWithRepositories(t *testing.T) {
	t.Run("blank input short-circuits", func(t *testing.T) {
		for _, id := range []string{"", "   ", "\t\n"} {
			m := &mockFetcher{}
			agg := scope.New(m)

			res, err := agg.UserWithRepositories(context.Background(), id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.IsError() || res.Message() != "User ID cannot be empty" {
				t.Errorf("id %q: got %+v, want User ID cannot be empty", id, res)
			}
			if m.userCalls.Load() != 0 || m.repoCalls.Load() != 0 {
				t.Errorf("id %q: fetcher was invoked for blank input", id)
			}
		}
	})

	t.Run("trims the id once for both fetches", func(t *testing.T) {
		var userID, repoID string
		m := &mockFetcher{}
		m.userFn = func(_ context.Context, id string) (outcome.Outcome[ghfetch.User], error) {
			userID = id
			return outcome.OK(ghfetch.User{Name: "The Octocat"}), nil
		}
		m.reposFn = func(_ context.Context, id string) (outcome.Outcome[[]ghfetch.Repository], error) {
			repoID = id
			return outcome.OK([]ghfetch.Repository{}), nil
		}
		agg := scope.New(m)

		if _, err := agg.UserWithRepositories(context.Background(), "  octocat  "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userID != "octocat" || repoID != "octocat" {
			t.Errorf("fetches saw ids %q and %q, want both trimmed to octocat", userID, repoID)
		}
	})

	t.Run("merges both successes with total forks", func(t *testing.T) {
		m := &mockFetcher{
			reposFn: func(context.Context, string) (outcome.Outcome[[]ghfetch.Repository], error) {
				return outcome.OK(twoRepos()), nil
			},
		}
		agg := scope.New(m)

		res, err := agg.UserWithRepositories(context.Background(), "octocat")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsSuccess() {
			t.Fatalf("expected success, got %+v", res)
		}
		got := res.Value()
		if got.TotalForks != 300 {
			t.Errorf("TotalForks = %d, want 300", got.TotalForks)
		}
		if len(got.Repositories) != 2 || got.Repositories[0].Name != "repo1" || got.Repositories[1].Name != "repo2" {
			t.Errorf("repository order not preserved: %+v", got.Repositories)
		}
		if got.User.Name != "The Octocat" {
			t.Errorf("User = %+v", got.User)
		}
	})

	t.Run("user error wins over successful repositories", func(t *testing.T) {
		m := &mockFetcher{
			userFn: func(context.Context, string) (outcome.Outcome[ghfetch.User], error) {
				return outcome.Fail[ghfetch.User]("User not found"), nil
			},
			reposFn: func(context.Context, string) (outcome.Outcome[[]ghfetch.Repository], error) {
				return outcome.OK(twoRepos()), nil
			},
		}
		agg := scope.New(m)

		res, err := agg.UserWithRepositories(context.Background(), "octocat")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError() || res.Message() != "User not found" {
			t.Errorf("got %+v, want the user error", res)
		}
	})

	t.Run("repositories error propagates when user succeeds", func(t *testing.T) {
		m := &mockFetcher{
			reposFn: func(context.Context, string) (outcome.Outcome[[]ghfetch.Repository], error) {
				return outcome.Fail[[]ghfetch.Repository]("Failed to fetch repositories: 500"), nil
			},
		}
		agg := scope.New(m)

		res, err := agg.UserWithRepositories(context.Background(), "octocat")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError() || res.Message() != "Failed to fetch repositories: 500" {
			t.Errorf("got %+v, want the repositories error", res)
		}
	})

	t.Run("uncaught dns fault maps to no internet", func(t *testing.T) {
		m := &mockFetcher{
			reposFn: func(context.Context, string) (outcome.Outcome[[]ghfetch.Repository], error) {
				return outcome.Outcome[[]ghfetch.Repository]{}, &net.DNSError{Err: "no such host", Name: "api.github.com"}
			},
		}
		agg := scope.New(m)

		res, err := agg.UserWithRepositories(context.Background(), "octocat")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError() || res.Message() != "No internet connection" {
			t.Errorf("got %+v, want No internet connection", res)
		}
	})

	t.Run("cancellation propagates as an error", func(t *testing.T) {
		block := func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}
		m := &mockFetcher{
			userFn: func(ctx context.Context, _ string) (outcome.Outcome[ghfetch.User], error) {
				return outcome.Outcome[ghfetch.User]{}, block(ctx)
			},
			reposFn: func(ctx context.Context, _ string) (outcome.Outcome[[]ghfetch.Repository], error) {
				return outcome.Outcome[[]ghfetch.Repository]{}, block(ctx)
			},
		}
		agg := scope.New(m)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := agg.UserWithRepositories(ctx, "octocat")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if res.IsError() {
			t.Errorf("cancellation must not produce an error outcome: %+v", res)
		}
	})

	t.Run("unrecognized outcome combination hits the fallback", func(t *testing.T) {
		m := &mockFetcher{
			userFn: func(context.Context, string) (outcome.Outcome[ghfetch.User], error) {
				return outcome.Pending[ghfetch.User](), nil
			},
		}
		agg := scope.New(m)

		res, err := agg.UserWithRepositories(context.Background(), "octocat")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError() || res.Message() != "Unexpected error occurred" {
			t.Errorf("got %+v, want Unexpected error occurred", res)
		}
	})
}

func TestUser(t *testing.T) {
	t.Run("blank id", func(t *testing.T) {
		m := &mockFetcher{}
		agg := scope.New(m)

		res, err := agg.User(context.Background(), "   ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError() || res.Message() != "User ID cannot be empty" {
			t.Errorf("got %+v, want User ID cannot be empty", res)
		}
		if m.userCalls.Load() != 0 {
			t.Error("fetcher was invoked for blank input")
		}
	})

	t.Run("trims before fetching", func(t *testing.T) {
		m := &mockFetcher{}
		agg := scope.New(m)

		res, err := agg.User(context.Background(), "  octocat  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsSuccess() {
			t.Fatalf("expected success, got %+v", res)
		}
		if got := m.lastUserID.Load(); got != "octocat" {
			t.Errorf("fetcher saw id %v, want octocat", got)
		}
	})
}

func TestRepositories(t *testing.T) {
	m := &mockFetcher{}
	agg := scope.New(m)

	res, err := agg.Repositories(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError() || res.Message() != "User ID cannot be empty" {
		t.Errorf("got %+v, want User ID cannot be empty", res)
	}
	if m.repoCalls.Load() != 0 {
		t.Error("fetcher was invoked for blank input")
	}
}
