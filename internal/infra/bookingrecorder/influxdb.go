//go:build !gcloud

package bookingrecorder

import (
	"context"
	"fmt"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

const attemptMeasurement = "booking_attempt"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.BookingAttemptRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "booking attempt recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, booking attempt recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "booking attempt recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}, nil
}

func attemptPoint(record domain.BookingAttemptRecord) *write.Point {
	reason := record.Reason
	if reason == "" {
		reason = "none"
	}

	return influxdb2.NewPoint(
		attemptMeasurement,
		map[string]string{
			"provider_id": record.ProviderID,
			"outcome":     string(record.Outcome),
			"reason":      reason,
		},
		map[string]any{
			"date":       record.Date,
			"start_time": record.StartTime,
			"count":      1,
		},
		record.At,
	)
}

func (r *influxDBRecorder) RecordAttempt(ctx context.Context, record domain.BookingAttemptRecord) error {
	if err := r.writeAPI.WritePoint(ctx, attemptPoint(record)); err != nil {
		return fmt.Errorf("failed to write booking attempt to InfluxDB: %w", err)
	}
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
