//go:build loadtest

package metrics

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
)

var loadtestRunID = os.Getenv("LOADTEST_RUN_ID")

// appendLoadtestLabels tags samples with the load-test run they belong to.
func appendLoadtestLabels(_ context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
	attrs = append(attrs, attribute.Bool("loadtest", true))
	if loadtestRunID != "" {
		attrs = append(attrs, attribute.String("loadtest.run_id", loadtestRunID))
	}
	return attrs
}
