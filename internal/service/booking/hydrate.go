package booking

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

// HydrateFromStore loads the persisted ledger once at startup. A load failure
// leaves the ledger empty but hydrated. Loaded records are not written back,
// so a transient read error cannot overwrite the stored ledger.
func HydrateFromStore(ctx context.Context, ledger *Ledger, store domain.BookingStore) {
	records, err := store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to load bookings, starting with an empty ledger",
			slog.String("error", err.Error()),
		)
		records = nil
	}

	ledger.restore(records)

	slog.InfoContext(ctx, "booking ledger hydrated",
		slog.Int("booking_count", len(records)),
	)
}
