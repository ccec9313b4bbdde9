//go:build !gcloud

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestNewHandler_AddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(HandlerConfig{
		Level:         slog.LevelInfo,
		Environment:   EnvProd,
		Service:       ServiceInfo{Name: "booking", Version: "v1.2.3"},
		DefaultModule: Module("appointment-booking"),
		Writer:        &buf,
	}))

	ctx := WithRequestID(context.Background(), "req-1")
	logger.InfoContext(ctx, "booking confirmed", slog.String("booking_id", "b-1"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}

	want := map[string]string{
		"msg":             "booking confirmed",
		"service.name":    "booking",
		"service.version": "v1.2.3",
		"env":             "prod",
		"module":          "appointment-booking",
		"request_id":      "req-1",
		"booking_id":      "b-1",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %s", k, entry[k], v)
		}
	}
}

func TestNewHandler_ModuleFromContextOverridesDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(HandlerConfig{
		Environment:   EnvDev,
		DefaultModule: Module("default"),
		Writer:        &buf,
	}))

	logger.InfoContext(WithModule(context.Background(), Module("feed")), "fetched")

	if !strings.Contains(buf.String(), "module=feed") {
		t.Errorf("expected module=feed in %q", buf.String())
	}
}

func TestNewHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(HandlerConfig{
		Level:       slog.LevelWarn,
		Environment: EnvProd,
		Writer:      &buf,
	}))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info line written at warn level: %s", buf.String())
	}
}

func TestValidateAndExtractRequestID(t *testing.T) {
	valid := "0190a4c2-6f3e-7c1a-9b2d-3e4f5a6b7c8d"

	tests := []struct {
		name      string
		input     string
		wantInput bool
	}{
		{name: "valid uuid kept", input: valid, wantInput: true},
		{name: "empty replaced", input: ""},
		{name: "garbage replaced", input: "not-a-request-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAndExtractRequestID(tt.input)
			if tt.wantInput {
				if got != tt.input {
					t.Errorf("got %s, want %s", got, tt.input)
				}
				return
			}
			if got == tt.input || got == "" {
				t.Errorf("expected a generated ID, got %q", got)
			}
			if ValidateAndExtractRequestID(got) != got {
				t.Errorf("generated ID %q is not itself valid", got)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "WARN", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "", want: slog.LevelInfo},
		{input: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
