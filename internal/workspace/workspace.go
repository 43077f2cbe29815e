// Package workspace implements the Workspace entity: a per-job scratch
// directory with a job-local duplex logger, bounded downloads, and the
// upload/tar/report operations shared by the Renderer and Merger pipelines.
package workspace

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/papers/papers/internal/apierr"
	"github.com/papers/papers/internal/config"
	"github.com/papers/papers/internal/httpx"
	"github.com/papers/papers/internal/jobid"
	"github.com/papers/papers/pkg/logger"
)

// Storage is the capability a Workspace needs from the object store.
type Storage interface {
	UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Workspace owns a job's temp directory, logger, and S3 key prefix for the
// lifetime of exactly one job.
type Workspace struct {
	client  httpx.Client
	storage Storage
	cfg     *config.JobConfig
	s3Cfg   *config.S3Config

	tempDir    string
	log        *logger.Logger
	logFile    *os.File
	s3DirName  string
}

// New creates the temp directory and a file+process duplex logger rooted
// inside it.
func New(baseLevel logger.Level, client httpx.Client, storage Storage, jobCfg *config.JobConfig, s3Cfg *config.S3Config) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "papers-job-*")
	if err != nil {
		return nil, apierr.InternalF("create workspace temp dir: %w", err)
	}
	logPath := filepath.Join(dir, "logs.txt")
	f, err := os.Create(logPath)
	if err != nil {
		os.RemoveAll(dir)
		return nil, apierr.InternalF("create workspace log file: %w", err)
	}
	w := &Workspace{
		client:    client,
		storage:   storage,
		cfg:       jobCfg,
		s3Cfg:     s3Cfg,
		tempDir:   dir,
		log:       logger.NewDuplex(f, baseLevel),
		logFile:   f,
		s3DirName: jobid.NewS3Prefix(time.Now()),
	}
	return w, nil
}

// Close removes the temp directory. Callers must invoke this on every exit
// path (invariant 1).
func (w *Workspace) Close() {
	w.logFile.Close()
	os.RemoveAll(w.tempDir)
}

func (w *Workspace) TempDirPath() string { return w.tempDir }
func (w *Workspace) Logger() *logger.Logger { return w.log }
func (w *Workspace) S3DirName() string { return w.s3DirName }

// DownloadFile downloads rawURL into the temp directory, returning the
// absolute path to the written file.
func (w *Workspace) DownloadFile(ctx context.Context, rawURL string) (string, error) {
	return w.downloadFileImpl(ctx, rawURL, "")
}

// DownloadFileWithPrefix downloads rawURL, prepending prefix+"-" to the
// resolved filename.
func (w *Workspace) DownloadFileWithPrefix(ctx context.Context, rawURL, prefix string) (string, error) {
	return w.downloadFileImpl(ctx, rawURL, prefix)
}

func (w *Workspace) downloadFileImpl(ctx context.Context, rawURL, prefix string) (string, error) {
	resp, err := w.client.GetFollowRedirects(ctx, rawURL)
	if err != nil {
		return "", apierr.InternalF("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	name, ok := httpx.FilenameOf(resp)
	if !ok {
		name, ok = httpx.ExtractFilenameFromURI(rawURL)
	}
	if !ok {
		return "", apierr.Unprocessable("could not determine a filename for %s", rawURL)
	}
	if prefix != "" {
		name = prefix + "-" + name
	}

	dest := filepath.Join(w.tempDir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", apierr.InternalF("create download target %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := httpx.StreamBodyToFile(resp.Body, f, int64(w.cfg.MaxAssetSize)); err != nil {
		os.Remove(dest)
		return "", apierr.Unprocessable("%w", err)
	}
	return dest, nil
}

// UploadToS3 uploads the file at path to "<s3Dir>/<basename>" and returns a
// presigned GET URL valid for the configured expiration.
func (w *Workspace) UploadToS3(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", apierr.InternalF("open %s for upload: %w", path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", apierr.InternalF("stat %s: %w", path, err)
	}

	key := fmt.Sprintf("%s/%s", w.s3DirName, filepath.Base(path))
	if err := w.storage.UploadFile(ctx, key, f, info.Size(), contentTypeFor(path)); err != nil {
		return "", apierr.InternalF("upload %s to s3: %w", path, err)
	}
	url, err := w.storage.GetPresignedURL(ctx, key, w.s3Cfg.ExpirationTime)
	if err != nil {
		return "", apierr.InternalF("presign %s: %w", key, err)
	}
	return url, nil
}

// UploadWorkspace tars the entire temp directory in-memory, writes
// workspace.tar inside it, and uploads it to "<s3Dir>/workspace.tar".
// Failures here are logged, never fatal to the job.
func (w *Workspace) UploadWorkspace(ctx context.Context) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	base := filepath.Base(w.tempDir)

	err := filepath.Walk(w.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.tempDir, path)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.Join(base, rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		w.log.Errorf("tar workspace: %v", err)
		return
	}
	if err := tw.Close(); err != nil {
		w.log.Errorf("finalize workspace tar: %v", err)
		return
	}

	tarPath := filepath.Join(w.tempDir, "workspace.tar")
	if err := os.WriteFile(tarPath, buf.Bytes(), 0o644); err != nil {
		w.log.Errorf("write workspace.tar: %v", err)
		return
	}

	key := fmt.Sprintf("%s/workspace.tar", w.s3DirName)
	f, err := os.Open(tarPath)
	if err != nil {
		w.log.Errorf("reopen workspace.tar: %v", err)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		w.log.Errorf("stat workspace.tar: %v", err)
		return
	}
	if err := w.storage.UploadFile(ctx, key, f, info.Size(), "application/x-tar"); err != nil {
		w.log.Errorf("upload workspace.tar: %v", err)
	}
}

func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".tex":
		return "text/x-tex"
	default:
		return "application/octet-stream"
	}
}
