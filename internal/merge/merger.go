// Package merge implements the Merger state machine: asset fetch,
// image-to-PDF conversion, pdfunite, upload, callback.
package merge

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/papers/papers/internal/apierr"
	"github.com/papers/papers/internal/callback"
	"github.com/papers/papers/internal/docspec"
	"github.com/papers/papers/internal/jobid"
	"github.com/papers/papers/internal/workspace"
	"github.com/papers/papers/pkg/metrics"
)

// Merger runs one MergeSpec job to completion.
type Merger struct {
	Workspace *workspace.Workspace
	Reporter  *callback.Reporter
}

func New(ws *workspace.Workspace, reporter *callback.Reporter) *Merger {
	return &Merger{Workspace: ws, Reporter: reporter}
}

// Run executes the full pipeline, mirroring Renderer.Run's guarantees:
// exactly one callback, workspace tar always attempted, workspace always
// closed.
func (m *Merger) Run(ctx context.Context, spec docspec.MergeSpec) {
	defer m.Workspace.Close()
	started := metrics.JobStarted("merge")

	outputPath, err := m.merge(ctx, spec)
	if err != nil {
		m.Workspace.Logger().Errorf("merge failed: %v", err)
		m.Reporter.ReportFailure(ctx, spec.CallbackURL.String(), err, "", m.Workspace.S3DirName())
		metrics.JobFinished("merge", "failure")
		metrics.ObserveDuration("merge", time.Since(started))
		m.Workspace.UploadWorkspace(ctx)
		return
	}

	presignedURL, err := m.Workspace.UploadToS3(ctx, outputPath)
	if err != nil {
		m.Workspace.Logger().Errorf("upload failed: %v", err)
		m.Reporter.ReportFailure(ctx, spec.CallbackURL.String(), err, "", m.Workspace.S3DirName())
		metrics.JobFinished("merge", "failure")
		metrics.ObserveDuration("merge", time.Since(started))
		m.Workspace.UploadWorkspace(ctx)
		return
	}

	m.Reporter.ReportSuccess(ctx, spec.CallbackURL.String(), presignedURL, m.Workspace.S3DirName())
	metrics.JobFinished("merge", "success")
	metrics.ObserveDuration("merge", time.Since(started))
	m.Workspace.UploadWorkspace(ctx)
}

func (m *Merger) merge(ctx context.Context, spec docspec.MergeSpec) (string, error) {
	paths, err := m.downloadAssetsOrdered(ctx, spec.AssetURLs)
	if err != nil {
		return "", err
	}

	pdfPaths := make([]string, len(paths))
	for i, p := range paths {
		converted, err := toPDF(ctx, p)
		if err != nil {
			return "", err
		}
		pdfPaths[i] = converted
	}

	outputPath := filepath.Join(m.Workspace.TempDirPath(), spec.OutputFilename)
	if err := runPdfunite(ctx, m.Workspace.TempDirPath(), pdfPaths, spec.OutputFilename); err != nil {
		return "", err
	}
	return outputPath, nil
}

// downloadAssetsOrdered downloads every asset concurrently, each with a UUID
// prefix to dodge basename collisions, returning paths in input order.
func (m *Merger) downloadAssetsOrdered(ctx context.Context, assets []docspec.URI) ([]string, error) {
	paths := make([]string, len(assets))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range assets {
		i, u := i, u
		g.Go(func() error {
			path, err := m.Workspace.DownloadFileWithPrefix(gctx, u.String(), jobid.NewAssetPrefix())
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// toPDF returns path unchanged if its extension is "pdf" (case-sensitive) or
// absent; otherwise it shells out to ImageMagick's convert to produce an A4
// PDF and returns that path instead.
func toPDF(ctx context.Context, path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "pdf" || ext == "" {
		return path, nil
	}
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	outPath := stem + ".pdf"
	cmd := exec.CommandContext(ctx, "convert", path,
		"-resize", "595x842",
		"-gravity", "center",
		"-background", "white",
		"-extent", "595x842",
		"-density", "72",
		"-page", "A4",
		outPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", apierr.InternalF("convert %s to pdf failed: %w\n%s", path, err, out)
	}
	return outPath, nil
}

// pdfuniteArgs returns the basenames of inputs in order, followed by
// outputFilename.
func pdfuniteArgs(inputs []string, outputFilename string) []string {
	basenames := make([]string, len(inputs))
	for i, p := range inputs {
		basenames[i] = filepath.Base(p)
	}
	return append(basenames, outputFilename)
}

func runPdfunite(ctx context.Context, dir string, inputs []string, outputFilename string) error {
	cmd := exec.CommandContext(ctx, "pdfunite", pdfuniteArgs(inputs, outputFilename)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return apierr.InternalF("pdfunite failed: %w\n%s", err, out)
	}
	return nil
}
