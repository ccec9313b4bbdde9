package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/tracing"
)

type bookingRow struct {
	ID           string `gorm:"primaryKey"`
	Position     int    `gorm:"not null"`
	ProviderID   string `gorm:"not null;uniqueIndex:idx_bookings_slot"`
	ProviderName string `gorm:"not null"`
	Date         string `gorm:"not null;uniqueIndex:idx_bookings_slot"`
	StartTime    string `gorm:"not null;uniqueIndex:idx_bookings_slot"`
	EndTime      string `gorm:"not null"`
	CreatedAt    time.Time
}

func (bookingRow) TableName() string {
	return "bookings"
}

// postgresBookingStore mirrors the ledger into a bookings table. Save
// replaces every row in one transaction, so readers never see a partial ledger.
type postgresBookingStore struct {
	db *gorm.DB
}

// OpenPostgres connects with gorm's pgx-backed postgres driver.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return db, nil
}

func NewPostgresBookingStore(ctx context.Context, db *gorm.DB) (domain.BookingStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&bookingRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate bookings table: %w", err)
	}
	return &postgresBookingStore{db: db}, nil
}

func (s *postgresBookingStore) Load(ctx context.Context) ([]domain.Booking, error) {
	ctx, span := tracing.StartStoreOperationSpan(ctx, "postgresql", "select")
	defer span.End()

	var rows []bookingRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	bookings := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, domain.Booking{
			ID:           row.ID,
			ProviderID:   row.ProviderID,
			ProviderName: row.ProviderName,
			Date:         row.Date,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return bookings, nil
}

func (s *postgresBookingStore) Save(ctx context.Context, bookings []domain.Booking) error {
	ctx, span := tracing.StartStoreOperationSpan(ctx, "postgresql", "replace")
	defer span.End()

	rows := make([]bookingRow, 0, len(bookings))
	for i, b := range bookings {
		rows = append(rows, bookingRow{
			ID:           b.ID,
			Position:     i,
			ProviderID:   b.ProviderID,
			ProviderName: b.ProviderName,
			Date:         b.Date,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			CreatedAt:    b.CreatedAt,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&bookingRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		tracing.RecordResult(span, err)
		return fmt.Errorf("failed to save bookings: %w", err)
	}
	return nil
}
