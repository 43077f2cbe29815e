package jobid

import (
	"strings"
	"testing"
	"time"
)

func TestNewS3PrefixIsUniquePerCall(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := NewS3Prefix(now)
	b := NewS3Prefix(now)
	if a == b {
		t.Fatalf("expected distinct prefixes for the same timestamp, got %q twice", a)
	}
	if !strings.HasPrefix(a, now.Format(time.RFC3339Nano)) {
		t.Errorf("prefix %q does not start with the timestamp", a)
	}
}

func TestNewAssetPrefixIsUnique(t *testing.T) {
	a := NewAssetPrefix()
	b := NewAssetPrefix()
	if a == b {
		t.Fatalf("expected distinct asset prefixes, got %q twice", a)
	}
}
