package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	ErrMissing       = errors.New("missing required environment variables")
	ErrInvalidUserID = errors.New("invalid USER_ID")
)

type MemoryConfig struct {
	ServerURL string `env:"MEMORY_SERVER_URL"`
	OrgID     string `env:"ORG_ID"`
	ProjectID string `env:"PROJECT_ID"`
	UserID    string `env:"USER_ID"`

	MaxAttempts    int           `env:"MEMORY_MAX_ATTEMPTS" envDefault:"3"`
	RetryDelay     time.Duration `env:"MEMORY_RETRY_DELAY" envDefault:"2s"`
	TopK           int           `env:"MEMORY_TOP_K" envDefault:"5"`
	PageSize       int           `env:"MEMORY_PAGE_SIZE" envDefault:"100"`
	RequestTimeout time.Duration `env:"MEMORY_REQUEST_TIMEOUT" envDefault:"60s"`
}

// ParseMemoryConfig fails with ErrMissing naming every unset required
// variable, so the user can fix all of them at once.
func ParseMemoryConfig(environ map[string]string) (*MemoryConfig, error) {
	c := &MemoryConfig{}
	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return nil, err
	}

	var missing []string
	for _, v := range []struct {
		name, value string
	}{
		{"MEMORY_SERVER_URL", c.ServerURL},
		{"ORG_ID", c.OrgID},
		{"PROJECT_ID", c.ProjectID},
		{"USER_ID", c.UserID},
	} {
		if strings.TrimSpace(v.value) == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	if err := ValidateUserID(c.UserID); err != nil {
		return nil, err
	}

	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	return c, nil
}

// ValidateUserID rejects ids that cannot be quoted inside a memory filter
// expression (metadata.user_id='<id>').
func ValidateUserID(id string) error {
	if strings.ContainsAny(id, "'\\\n") {
		return fmt.Errorf("%w: %q must not contain quotes, backslashes or newlines", ErrInvalidUserID, id)
	}
	return nil
}
