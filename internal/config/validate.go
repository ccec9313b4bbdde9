package config

import "errors"

// ValidateForRun checks the settings the server cannot start without. Only
// the selected store backend's settings are checked.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Feed.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch cfg.Store.Backend {
	case StoreBackendRedis:
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	case StoreBackendPostgres:
		if err := cfg.Postgres.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
