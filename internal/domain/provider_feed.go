package domain

import "context"

//go:generate mockgen -source=provider_feed.go -destination=provider_feed_mock.go -package=domain

type ProviderFeed interface {
	FetchAvailability(ctx context.Context) ([]RawAvailability, error)
}
