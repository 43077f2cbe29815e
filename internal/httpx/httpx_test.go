package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractFilenameFromURI(t *testing.T) {
	cases := []struct {
		uri      string
		wantName string
		wantOK   bool
	}{
		{"/logo.png", "logo.png", true},
		{"/assets/", "", false},
		{"/assets/icon", "icon", true},
		{"/", "", false},
		{"http://www.store2be.com", "", false},
	}
	for _, tc := range cases {
		name, ok := ExtractFilenameFromURI(tc.uri)
		if ok != tc.wantOK || name != tc.wantName {
			t.Errorf("ExtractFilenameFromURI(%q) = (%q, %v), want (%q, %v)",
				tc.uri, name, ok, tc.wantName, tc.wantOK)
		}
	}
}

func TestFilenameOfContentDisposition(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Content-Disposition", `attachment; filename="report.pdf"`)
	name, ok := FilenameOf(resp)
	if !ok || name != "report.pdf" {
		t.Errorf("FilenameOf = (%q, %v), want (report.pdf, true)", name, ok)
	}

	resp2 := &http.Response{Header: http.Header{}}
	if _, ok := FilenameOf(resp2); ok {
		t.Errorf("expected no filename when header absent")
	}
}

func TestStreamBodyToFileEnforcesLimit(t *testing.T) {
	var buf bytes.Buffer
	_, err := StreamBodyToFile(strings.NewReader("0123456789"), &buf, 5)
	if err == nil {
		t.Fatalf("expected error when body exceeds limit")
	}
}

func TestStreamBodyToFileWithinLimit(t *testing.T) {
	var buf bytes.Buffer
	n, err := StreamBodyToFile(strings.NewReader("hello"), &buf, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 || buf.String() != "hello" {
		t.Errorf("unexpected copy result: n=%d buf=%q", n, buf.String())
	}
}

func TestGetFollowRedirectsFollowsLocation(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("final"))
	}))
	defer final.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer redirector.Close()

	c := NewDefaultClient()
	resp, err := c.GetFollowRedirects(context.Background(), redirector.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "final" {
		t.Errorf("got body %q, want final", body)
	}
}
