// Package render implements the Renderer state machine: template fetch,
// escape, populate, xelatex, upload, callback.
package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/papers/papers/internal/apierr"
	"github.com/papers/papers/internal/callback"
	"github.com/papers/papers/internal/docspec"
	"github.com/papers/papers/internal/templating"
	"github.com/papers/papers/internal/texutil"
	"github.com/papers/papers/internal/workspace"
	"github.com/papers/papers/pkg/metrics"
)

// Renderer runs one DocumentSpec job to completion.
type Renderer struct {
	Workspace *workspace.Workspace
	Engine    *templating.Engine
	Reporter  *callback.Reporter
}

func New(ws *workspace.Workspace, engine *templating.Engine, reporter *callback.Reporter) *Renderer {
	return &Renderer{Workspace: ws, Engine: engine, Reporter: reporter}
}

// Run executes the full pipeline, always reporting exactly one callback and
// always attempting the workspace tar upload afterward, then closing the
// workspace.
func (r *Renderer) Run(ctx context.Context, spec docspec.DocumentSpec) {
	defer r.Workspace.Close()
	started := metrics.JobStarted("render")

	outputPath, err := r.render(ctx, spec)
	if err != nil {
		r.Workspace.Logger().Errorf("render failed: %v", err)
		r.Reporter.ReportFailure(ctx, spec.CallbackURL.String(), err, "", r.Workspace.S3DirName())
		metrics.JobFinished("render", "failure")
		metrics.ObserveDuration("render", time.Since(started))
		r.Workspace.UploadWorkspace(ctx)
		return
	}

	presignedURL, err := r.Workspace.UploadToS3(ctx, outputPath)
	if err != nil {
		r.Workspace.Logger().Errorf("upload failed: %v", err)
		r.Reporter.ReportFailure(ctx, spec.CallbackURL.String(), err, "", r.Workspace.S3DirName())
		metrics.JobFinished("render", "failure")
		metrics.ObserveDuration("render", time.Since(started))
		r.Workspace.UploadWorkspace(ctx)
		return
	}

	r.Reporter.ReportSuccess(ctx, spec.CallbackURL.String(), presignedURL, r.Workspace.S3DirName())
	metrics.JobFinished("render", "success")
	metrics.ObserveDuration("render", time.Since(started))
	r.Workspace.UploadWorkspace(ctx)
}

// Preview runs only the template-fetch and render stages, returning the
// rendered source without touching LaTeX or the object store.
func (r *Renderer) Preview(ctx context.Context, spec docspec.DocumentSpec) (string, error) {
	defer r.Workspace.Close()
	templatePath, err := r.Workspace.DownloadFile(ctx, spec.TemplateURL.String())
	if err != nil {
		return "", err
	}
	return r.renderTemplate(templatePath, spec)
}

// render performs stages 1-4 (template fetch, render, asset fetch, xelatex)
// and returns the path to the typeset PDF; Run does the upload.
func (r *Renderer) render(ctx context.Context, spec docspec.DocumentSpec) (string, error) {
	templatePath, err := r.Workspace.DownloadFile(ctx, spec.TemplateURL.String())
	if err != nil {
		return "", err
	}

	rendered, err := r.renderTemplate(templatePath, spec)
	if err != nil {
		return "", err
	}

	texFilename := texFilenameFor(spec.OutputFilename)
	texPath := filepath.Join(r.Workspace.TempDirPath(), texFilename)
	if err := os.WriteFile(texPath, []byte(rendered), 0o644); err != nil {
		return "", apierr.InternalF("write rendered template: %w", err)
	}

	if err := r.downloadAssets(ctx, spec.AssetURLs); err != nil {
		return "", err
	}

	if err := runXelatex(ctx, r.Workspace.TempDirPath(), texFilename); err != nil {
		return "", err
	}

	return filepath.Join(r.Workspace.TempDirPath(), spec.OutputFilename), nil
}

func (r *Renderer) renderTemplate(templatePath string, spec docspec.DocumentSpec) (string, error) {
	vars := spec.Variables
	if !spec.NoEscapeTex {
		vars = texutil.Escape(vars)
	}
	ctx, ok := vars.(map[string]any)
	if !ok {
		return "", apierr.InternalF("render template: variables is not a JSON object")
	}
	out, err := r.Engine.RenderFile(templatePath, ctx)
	if err != nil {
		return "", apierr.InternalF("render template: %w", err)
	}
	return out, nil
}

func (r *Renderer) downloadAssets(ctx context.Context, assets []docspec.URI) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, u := range assets {
		u := u
		g.Go(func() error {
			_, err := r.Workspace.DownloadFile(gctx, u.String())
			return err
		})
	}
	return g.Wait()
}

// texFilenameFor replaces a trailing ".pdf" extension with ".tex", matching
// the source's output_filename→template-output naming convention.
func texFilenameFor(outputFilename string) string {
	if strings.HasSuffix(outputFilename, ".pdf") {
		return strings.TrimSuffix(outputFilename, ".pdf") + ".tex"
	}
	return outputFilename + ".tex"
}

func runXelatex(ctx context.Context, dir, texFile string) error {
	cmd := exec.CommandContext(ctx, "xelatex",
		"-interaction=nonstopmode", "-file-line-error", "-shell-restricted", texFile)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return apierr.InternalF("xelatex failed: %w\n%s", err, out)
	}
	return nil
}
