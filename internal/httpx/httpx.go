// Package httpx implements the redirect-following GET client, filename
// extraction, and size-capped body streaming shared by the Workspace
// downloader. The Client interface is a capability parameter (per the design
// notes) so jobs can be constructed against a mock in tests instead of a
// boxed/global client.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// Client abstracts outbound HTTP so job pipelines can be tested against a
// fake implementation.
type Client interface {
	GetFollowRedirects(ctx context.Context, rawURL string) (*http.Response, error)
	PostJSON(ctx context.Context, rawURL string, body []byte) (*http.Response, error)
}

const maxRedirects = 10

// DefaultClient is the production Client backed by net/http.
type DefaultClient struct {
	HTTP *http.Client
}

// NewDefaultClient returns a Client that follows 301/302/307/308 redirects,
// bounded at maxRedirects hops.
func NewDefaultClient() *DefaultClient {
	return &DefaultClient{HTTP: &http.Client{
		// Hand every redirect back to GetFollowRedirects' own loop.
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}}
}

func (c *DefaultClient) GetFollowRedirects(ctx context.Context, rawURL string) (*http.Response, error) {
	current := strings.TrimSpace(rawURL)
	for i := 0; i < maxRedirects; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", current, err)
		}
		switch resp.StatusCode {
		case http.StatusMovedPermanently, http.StatusFound,
			http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			loc := resp.Header.Get("Location")
			resp.Body.Close()
			if loc == "" {
				return nil, errors.New("redirect response missing Location header")
			}
			next, err := url.Parse(loc)
			if err != nil {
				return nil, fmt.Errorf("parse redirect location: %w", err)
			}
			base, err := url.Parse(current)
			if err != nil {
				return nil, fmt.Errorf("parse current url: %w", err)
			}
			current = base.ResolveReference(next).String()
			continue
		default:
			return resp, nil
		}
	}
	return nil, fmt.Errorf("too many redirects following %s", rawURL)
}

func (c *DefaultClient) PostJSON(ctx context.Context, rawURL string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.HTTP.Do(req)
}

// FilenameOf returns the filename parameter of a Content-Disposition header,
// of any disposition type, if present and valid UTF-8.
func FilenameOf(resp *http.Response) (string, bool) {
	cd := resp.Header.Get("Content-Disposition")
	if cd == "" {
		return "", false
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return "", false
	}
	name, ok := params["filename"]
	if !ok || name == "" {
		return "", false
	}
	if !isValidUTF8(name) {
		return "", false
	}
	return name, true
}

func isValidUTF8(s string) bool {
	return strings.ToValidUTF8(s, "�") == s
}

// ExtractFilenameFromURI returns the final path segment of uri, or
// ("", false) if it's empty (e.g. a trailing slash), mirroring the source's
// `.split('/').last()` → None-if-empty behavior.
func ExtractFilenameFromURI(rawURI string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURI))
	if err != nil {
		return "", false
	}
	segments := strings.Split(u.Path, "/")
	last := segments[len(segments)-1]
	if last == "" {
		return "", false
	}
	return last, true
}

// StreamBodyToFile copies r to w, failing once the cumulative byte count
// exceeds limit. Returns the number of bytes written on success.
func StreamBodyToFile(r io.Reader, w io.Writer, limit int64) (int64, error) {
	limited := io.LimitReader(r, limit+1)
	n, err := io.Copy(w, limited)
	if err != nil {
		return n, fmt.Errorf("stream body: %w", err)
	}
	if n > limit {
		return n, fmt.Errorf("body exceeded max asset size of %d bytes", limit)
	}
	return n, nil
}
