package ghfetch

import (
	"context"

	"github.com/drpaneas/gitscope/internal/outcome"
)

// WatchUser emits Loading followed by the final fetch outcome, then closes.
// If ctx is cancelled before the fetch settles, the channel closes without
// a final element.
func (c *Client) WatchUser(ctx context.Context, userID string) <-chan outcome.Outcome[User] {
	return watch(ctx, userID, c.FetchUser)
}

// WatchRepositories is the progressive variant of FetchRepositories, with
// the same Loading-then-final contract as WatchUser.
func (c *Client) WatchRepositories(ctx context.Context, userID string) <-chan outcome.Outcome[[]Repository] {
	return watch(ctx, userID, c.FetchRepositories)
}

func watch[T any](ctx context.Context, userID string, fetch func(context.Context, string) (outcome.Outcome[T], error)) <-chan outcome.Outcome[T] {
	// Buffer both elements so a slow consumer never blocks the fetch goroutine.
	ch := make(chan outcome.Outcome[T], 2)
	go func() {
		defer close(ch)
		ch <- outcome.Pending[T]()
		final, err := fetch(ctx, userID)
		if err != nil {
			return
		}
		ch <- final
	}()
	return ch
}
