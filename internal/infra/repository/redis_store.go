package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/tracing"
)

// DefaultBookingKey keeps the storage key of the first persisted format.
const DefaultBookingKey = "BOOKINGS_V1"

// redisBookingStore keeps the whole ledger as one JSON array under a single key.
type redisBookingStore struct {
	client *redis.Client
	key    string
}

func NewRedisBookingStore(client *redis.Client, key string) domain.BookingStore {
	if key == "" {
		key = DefaultBookingKey
	}
	return &redisBookingStore{
		client: client,
		key:    key,
	}
}

func (r *redisBookingStore) Load(ctx context.Context) ([]domain.Booking, error) {
	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "get")
	defer span.End()

	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Booking{}, nil
		}
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}

	var records []bookingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidBookingData, err)
	}

	bookings := make([]domain.Booking, 0, len(records))
	for _, rec := range records {
		bookings = append(bookings, rec.toDomain())
	}
	return bookings, nil
}

func (r *redisBookingStore) Save(ctx context.Context, bookings []domain.Booking) error {
	ctx, span := tracing.StartStoreOperationSpan(ctx, "redis", "set")
	defer span.End()

	records := make([]bookingRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, toRecord(b))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal bookings: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		tracing.RecordResult(span, err)
		return fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}
	return nil
}
