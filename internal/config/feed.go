package config

import (
	"os"
	"time"
)

const (
	feedURLEnv             = "PROVIDER_FEED_URL"
	feedTimeoutEnv         = "FEED_TIMEOUT_SECONDS"
	feedRefreshIntervalEnv = "FEED_REFRESH_INTERVAL_SECONDS"

	defaultFeedTimeoutSeconds         = 10
	defaultFeedRefreshIntervalSeconds = 30
)

type FeedConfig struct {
	URL             string
	Timeout         time.Duration
	RefreshInterval time.Duration
}

func LoadFeedConfig() (*FeedConfig, error) {
	timeout, err := positiveIntEnv(feedTimeoutEnv, defaultFeedTimeoutSeconds, ErrInvalidFeedTimeout)
	if err != nil {
		return nil, err
	}

	refresh, err := positiveIntEnv(feedRefreshIntervalEnv, defaultFeedRefreshIntervalSeconds, ErrInvalidRefreshInterval)
	if err != nil {
		return nil, err
	}

	return &FeedConfig{
		URL:             os.Getenv(feedURLEnv),
		Timeout:         time.Duration(timeout) * time.Second,
		RefreshInterval: time.Duration(refresh) * time.Second,
	}, nil
}

func (c *FeedConfig) Validate() error {
	if c == nil || c.URL == "" {
		return ErrFeedURLMissing
	}
	return nil
}
