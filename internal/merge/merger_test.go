package merge

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRunPdfuniteArgCountIsInputsPlusOutput(t *testing.T) {
	inputs := []string{
		filepath.Join("/tmp/job", "a.pdf"),
		filepath.Join("/tmp/job", "b.pdf"),
		filepath.Join("/tmp/job", "c.pdf"),
	}
	args := pdfuniteArgs(inputs, "out.pdf")
	if len(args) != len(inputs)+1 {
		t.Errorf("pdfunite args = %d, want %d", len(args), len(inputs)+1)
	}
}

func TestToPDFPassthroughForPDFAndNoExtension(t *testing.T) {
	// toPDF shells out only for non-pdf, non-empty extensions; both pdf and
	// extensionless paths should be returned unchanged without invoking a
	// subprocess, so this runs without `convert` installed.
	cases := []string{"/tmp/a.pdf", "/tmp/noext"}
	for _, c := range cases {
		got, err := toPDF(context.Background(), c)
		if err != nil || got != c {
			t.Errorf("toPDF(%q) = (%q, %v), want (%q, nil)", c, got, err, c)
		}
	}
}
