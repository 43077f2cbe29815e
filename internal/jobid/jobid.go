// Package jobid generates per-job identifiers: the S3 prefix under which a
// job's artifacts live, and the UUID prefixes used to dodge asset filename
// collisions in the Merger path.
package jobid

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewS3Prefix returns a timestamp-derived prefix suffixed with a UUID,
// guaranteeing invariant 3 (uniqueness per job) even for two jobs created
// within the same timestamp resolution.
func NewS3Prefix(now time.Time) string {
	return fmt.Sprintf("%s-%s", now.Format(time.RFC3339Nano), uuid.NewString())
}

// NewAssetPrefix returns a fresh UUID string used to prefix a downloaded
// asset's filename in the Merger path.
func NewAssetPrefix() string {
	return uuid.NewString()
}
