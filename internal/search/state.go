package search

import (
	"slices"

	"github.com/drpaneas/gitscope/internal/ghfetch"
)

// State is the search screen's state. Consumers only ever see value copies;
// the Controller owns the authoritative instance. A nil User implies an
// empty Repositories slice and a zero TotalForks.
type State struct {
	SearchQuery    string
	IsLoading      bool
	User           *ghfetch.User
	Repositories   []ghfetch.Repository
	TotalForks     int
	Error          string
	RecentSearches []string
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Repositories = slices.Clone(s.Repositories)
	out.RecentSearches = slices.Clone(s.RecentSearches)
	return out
}
