// Package docspec defines the wire data model: DocumentSpec, MergeSpec, and
// their URI fields, plus the validation rules the dispatcher applies before
// spawning a job.
package docspec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/papers/papers/internal/apierr"
)

// URI is an absolute URL wrapper that trims surrounding whitespace before
// parsing on unmarshal, mirroring the source's PapersUri deserializer.
type URI struct {
	Raw string
}

func (u *URI) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	u.Raw = strings.TrimSpace(s)
	return nil
}

func (u URI) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Raw)
}

func (u URI) String() string { return u.Raw }

// DocumentSpec is the manifest for a render job.
type DocumentSpec struct {
	TemplateURL    URI    `json:"template_url"`
	AssetURLs      []URI  `json:"asset_urls"`
	CallbackURL    URI    `json:"callback_url"`
	OutputFilename string `json:"output_filename"`
	Variables      any    `json:"variables"`
	NoEscapeTex    bool   `json:"no_escape_tex"`
}

// UnmarshalJSON defaults variables to an empty object when it is absent or
// null. output_filename is filled separately by ApplyDefaults.
func (d *DocumentSpec) UnmarshalJSON(b []byte) error {
	type alias DocumentSpec
	aux := &struct {
		*alias
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, aux); err != nil {
		return err
	}
	if d.Variables == nil {
		d.Variables = map[string]any{}
	}
	return nil
}

// DefaultOutputFilename returns "out_<RFC3339>.pdf", the same default shape
// used by MergeSpec.
func DefaultOutputFilename(now time.Time) string {
	return fmt.Sprintf("out_%s.pdf", now.Format(time.RFC3339))
}

// ApplyDefaults fills OutputFilename when the client omitted it.
func (d *DocumentSpec) ApplyDefaults(now time.Time) {
	if strings.TrimSpace(d.OutputFilename) == "" {
		d.OutputFilename = DefaultOutputFilename(now)
	}
}

// Validate enforces invariant 4: the asset count cap.
func (d *DocumentSpec) Validate(maxAssets int) error {
	if len(d.AssetURLs) > maxAssets {
		return apierr.Unprocessable("document has %d asset_urls, exceeding the cap of %d", len(d.AssetURLs), maxAssets)
	}
	return nil
}

// MergeSpec is the manifest for a merge job.
type MergeSpec struct {
	AssetURLs      []URI  `json:"asset_urls"`
	CallbackURL    URI    `json:"callback_url"`
	OutputFilename string `json:"output_filename"`
}

// ApplyDefaults fills OutputFilename when the client omitted it.
func (m *MergeSpec) ApplyDefaults(now time.Time) {
	if strings.TrimSpace(m.OutputFilename) == "" {
		m.OutputFilename = DefaultOutputFilename(now)
	}
}

// Validate enforces invariant 5: asset_urls must be non-empty.
func (m *MergeSpec) Validate() error {
	if len(m.AssetURLs) == 0 {
		return apierr.Unprocessable("cannot merge with an empty asset_urls array")
	}
	return nil
}
