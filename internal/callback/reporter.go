package callback

import (
	"context"
	"encoding/json"

	"github.com/papers/papers/internal/apierr"
	"github.com/papers/papers/internal/httpx"
	"github.com/papers/papers/internal/sentryreport"
	"github.com/papers/papers/pkg/logger"
)

// Reporter POSTs a job's outcome Summary to its callback URL exactly once.
// A non-2xx response is logged but does not fail the job (best-effort), per
// §4.6.
type Reporter struct {
	Client httpx.Client
	Log    *logger.Logger
}

func NewReporter(client httpx.Client, log *logger.Logger) *Reporter {
	return &Reporter{Client: client, Log: log}
}

// ReportSuccess posts a success Summary.
func (r *Reporter) ReportSuccess(ctx context.Context, callbackURL, presignedURL, s3Folder string) {
	r.post(ctx, callbackURL, NewSuccess(presignedURL, s3Folder))
}

// ReportFailure posts a failure Summary. backtrace is informational and may
// be empty.
func (r *Reporter) ReportFailure(ctx context.Context, callbackURL string, err error, backtrace, s3Folder string) {
	sentryreport.CaptureMessage(apierr.DisplayError(err))
	r.post(ctx, callbackURL, NewFailure(apierr.DisplayError(err), backtrace, s3Folder))
}

func (r *Reporter) post(ctx context.Context, callbackURL string, s Summary) {
	body, err := json.Marshal(s)
	if err != nil {
		r.Log.Errorf("marshal callback summary: %v", err)
		return
	}
	resp, err := r.Client.PostJSON(ctx, callbackURL, body)
	if err != nil {
		r.Log.Errorf("callback post to %s failed: %v", callbackURL, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.Log.Warnf("callback to %s returned non-2xx status %d", callbackURL, resp.StatusCode)
	}
}
