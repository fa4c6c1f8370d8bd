package config

import "time"

// TiltifyConfig for the remote API collaborator. EventSlug and
// CauseSlug form the well-known key of the tracked fundraising event.
type TiltifyConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	CauseSlug      string `mapstructure:"cause_slug"`
	EventSlug      string `mapstructure:"event_slug"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout ...
func (c TiltifyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
