package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/joho/godotenv"
)

var validUsername = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)

// Config holds all runtime configuration for gitscope.
type Config struct {
	Username    string
	GitHubToken string
	Interactive bool
	Timeout     time.Duration
	Verbose     bool
}

// Validate checks that all required fields are set and consistent. In
// interactive mode the username comes from stdin, so it may be empty here.
func (c *Config) Validate() error {
	if c.Username == "" && !c.Interactive {
		return fmt.Errorf("github username is required")
	}
	if c.Username != "" && !validUsername.MatchString(c.Username) {
		return fmt.Errorf("invalid github username %q", c.Username)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}
	return nil
}

// LoadFromEnv populates environment-dependent fields. A .env file in the
// working directory is honored when present; the GitHub token is optional
// (unauthenticated API access works at lower rate limits).
func (c *Config) LoadFromEnv() {
	_ = godotenv.Load()
	c.GitHubToken = os.Getenv("GITHUB_TOKEN")
}
