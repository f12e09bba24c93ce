//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "onlinebanner-api"
	ConsumerName = "banner-storefront"

	StatePricingBaseline = "pricing baseline"
	StateOrderExists     = "an order exists for the admin listing"
	StateOrderMissing    = "no order with the requested id"
)

const (
	ExistingOrderID = "3f1c9a4e-0000-4000-8000-000000000301"
	MissingOrderID  = "3f1c9a4e-0000-4000-8000-000000000999"
)

// ExampleConfigPayload provides stable banner config data for pact interactions.
func ExampleConfigPayload() map[string]any {
	return map[string]any{
		"width_cm":   100,
		"height_cm":  50,
		"material":   "vinyl",
		"grommets":   true,
		"lamination": false,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
