// Package search holds the presentation-facing state machine for user
// lookups. A Controller owns one State and guarantees at most one in-flight
// search: starting a new search cancels the previous one, and a superseded
// search never writes back its result.
package search

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"

	"github.com/drpaneas/gitscope/internal/outcome"
	"github.com/drpaneas/gitscope/internal/scope"
)

const maxRecentSearches = 5

// Searcher is the aggregation entry point the controller drives.
type Searcher interface {
	UserWithRepositories(ctx context.Context, userID string) (outcome.Outcome[scope.UserWithRepositories], error)
}

// Controller mediates between the UI and the aggregator. All mutations of
// the underlying State go through its mutex; callers read snapshots via
// State or the Updates channel.
type Controller struct {
	searcher Searcher

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	gen    uint64
	closed bool

	wg      sync.WaitGroup
	updates chan State
}

// NewController returns an idle Controller. Call Close when done to cancel
// any outstanding search and release the Updates channel.
func NewController(searcher Searcher) *Controller {
	return &Controller{
		searcher: searcher,
		updates:  make(chan State, 1),
	}
}

// Updates returns a conflating stream of state snapshots: if the consumer
// lags, intermediate snapshots are dropped in favor of the latest one. The
// channel closes when the Controller is closed.
func (c *Controller) Updates() <-chan State {
	return c.updates
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// UpdateSearchQuery records the query text. No network activity.
func (c *Controller) UpdateSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchQuery = query
	c.publishLocked()
}

// Search runs SearchUser with the current query text.
func (c *Controller) Search() {
	c.mu.Lock()
	query := c.state.SearchQuery
	c.mu.Unlock()
	c.SearchUser(query)
}

// SearchUser starts a lookup for userID, cancelling any search already in
// flight. The result lands in the state asynchronously; a search that was
// superseded before settling terminates without touching the state.
func (c *Controller) SearchUser(userID string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.gen++
	gen := c.gen
	c.state.IsLoading = true
	c.state.Error = ""
	c.publishLocked()
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer cancel()
		res, err := c.searcher.UserWithRepositories(ctx, userID)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || gen != c.gen {
			return
		}

		if err != nil {
			// The aggregator maps faults to Error outcomes itself; this
			// branch only fires if one leaks through anyway.
			c.clearUserLocked()
			c.state.IsLoading = false
			var dnsErr *net.DNSError
			if errors.As(err, &dnsErr) {
				c.state.Error = "No internet connection"
			} else {
				c.state.Error = "Something went wrong"
			}
			c.publishLocked()
			return
		}

		switch {
		case res.IsSuccess():
			data := res.Value()
			user := data.User
			c.state.IsLoading = false
			c.state.User = &user
			c.state.Repositories = data.Repositories
			c.state.TotalForks = data.TotalForks
			c.state.Error = ""
			c.recordSearchLocked(userID)
		case res.IsError():
			c.clearUserLocked()
			c.state.IsLoading = false
			c.state.Error = res.Message()
		default:
			c.state.IsLoading = true
			c.state.Error = ""
		}
		c.publishLocked()
	}()
}

// ClearError clears only the error message.
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = ""
	c.publishLocked()
}

// ClearSearchQuery clears only the query text.
func (c *Controller) ClearSearchQuery() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchQuery = ""
	c.publishLocked()
}

// ClearUser empties the result payload: user, repositories, fork total.
func (c *Controller) ClearUser() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearUserLocked()
	c.publishLocked()
}

// ClearUIState returns to the idle state, keeping the query text and the
// recent-search history. Idempotent.
func (c *Controller) ClearUIState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsLoading = false
	c.state.Error = ""
	c.clearUserLocked()
	c.publishLocked()
}

// Close cancels any outstanding search, waits for it to wind down, and
// closes the Updates channel. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	c.wg.Wait()
	close(c.updates)
}

func (c *Controller) clearUserLocked() {
	c.state.User = nil
	c.state.Repositories = nil
	c.state.TotalForks = 0
}

// recordSearchLocked moves query to the front of the recent-search list,
// deduplicated and capped.
func (c *Controller) recordSearchLocked(query string) {
	q := strings.TrimSpace(query)
	if q == "" {
		return
	}
	recent := make([]string, 0, maxRecentSearches)
	recent = append(recent, q)
	for _, prev := range c.state.RecentSearches {
		if prev == q {
			continue
		}
		recent = append(recent, prev)
		if len(recent) == maxRecentSearches {
			break
		}
	}
	c.state.RecentSearches = recent
}

// publishLocked pushes the current snapshot to the updates channel,
// displacing an unread stale snapshot if one is pending.
func (c *Controller) publishLocked() {
	if c.closed {
		return
	}
	snap := c.state.clone()
	for {
		select {
		case c.updates <- snap:
			return
		default:
		}
		select {
		case <-c.updates:
		default:
		}
	}
}
