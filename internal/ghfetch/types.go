package ghfetch

// User holds the profile fields the app renders. Both fields must be present
// in the raw GitHub response or the fetch is rejected as invalid.
type User struct {
	Name      string
	AvatarURL string
}

// Repository holds a single entry from a user's repository list.
type Repository struct {
	Name            string
	Description     string
	UpdatedAt       string // RFC3339, as served by the API
	StargazersCount int
	ForksCount      int
}
