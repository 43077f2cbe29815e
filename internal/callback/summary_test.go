package callback

import (
	"encoding/json"
	"testing"
)

func TestSummarySuccessShape(t *testing.T) {
	s := NewSuccess("https://example.com/presigned", "job-1")
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"file":"https://example.com/presigned","s3_folder":"job-1"}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestSummaryFailureShape(t *testing.T) {
	s := NewFailure("boom\nCaused by: inner\n", "bt", "job-2")
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]string
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["s3_folder"] != "job-2" || out["backtrace"] != "bt" {
		t.Errorf("unexpected fields: %+v", out)
	}
}
