//go:build gcloud

package bookingrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt time.Time `bigquery:"recorded_at"`
	AttemptAt  time.Time `bigquery:"attempt_at"`
	ProviderID string    `bigquery:"provider_id"`
	Date       string    `bigquery:"date"`
	StartTime  string    `bigquery:"start_time"`
	Outcome    string    `bigquery:"outcome"`
	Reason     string    `bigquery:"reason"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.BookingAttemptRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "booking attempt recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, booking attempt recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, booking attempt recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "booking attempt recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordAttempt(ctx context.Context, record domain.BookingAttemptRecord) error {
	row := &bigQueryRecord{
		RecordedAt: time.Now(),
		AttemptAt:  record.At,
		ProviderID: record.ProviderID,
		Date:       record.Date,
		StartTime:  record.StartTime,
		Outcome:    string(record.Outcome),
		Reason:     record.Reason,
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("failed to insert booking attempt to BigQuery: %w", err)
	}
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
