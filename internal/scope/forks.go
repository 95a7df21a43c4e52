package scope

import "github.com/drpaneas/gitscope/internal/ghfetch"

// TotalForks returns the sum of ForksCount across repos. An empty or nil
// list sums to 0.
func TotalForks(repos []ghfetch.Repository) int {
	total := 0
	for _, r := range repos {
		total += r.ForksCount
	}
	return total
}
