package sentryreport

import "testing"

func TestInitWithEmptyDSNDisablesReporting(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init(\"\") returned error: %v", err)
	}
	// Should not panic even though no Sentry client was configured.
	CaptureMessage("this should be a no-op")
}
