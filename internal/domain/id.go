package domain

import "github.com/google/uuid"

// providerNamespace scopes name-derived provider IDs.
var providerNamespace = uuid.MustParse("6f1c2a4e-8d3b-4c57-9a0e-3b5d7e9f1a2c")

// IDGenerator supplies collision-free opaque identifiers.
type IDGenerator func() string

func NewUUID() string {
	return uuid.NewString()
}

// ProviderIDFor derives a provider's ID from its name. The same name always
// yields the same ID, so persisted bookings keep matching their provider
// after a restart.
func ProviderIDFor(name string) string {
	return uuid.NewSHA1(providerNamespace, []byte(name)).String()
}
