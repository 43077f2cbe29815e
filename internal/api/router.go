// Package api implements the Job Dispatcher: gin routes that validate and
// parse request bodies, spawn detached jobs, and reply immediately.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/papers/papers/internal/apierr"
	"github.com/papers/papers/internal/callback"
	"github.com/papers/papers/internal/config"
	"github.com/papers/papers/internal/docspec"
	"github.com/papers/papers/internal/httpx"
	"github.com/papers/papers/internal/merge"
	"github.com/papers/papers/internal/render"
	"github.com/papers/papers/internal/templating"
	"github.com/papers/papers/internal/workspace"
	"github.com/papers/papers/pkg/logger"
	"github.com/papers/papers/pkg/middleware"
)

// Deps bundles the shared, read-only collaborators every job needs, built
// once at startup and passed into every request (Design Notes: no leaked
// globals).
type Deps struct {
	Config  *config.Config
	Client  httpx.Client
	Storage workspace.Storage
	Engine  *templating.Engine
}

// NewRouter builds the gin engine with CORS, recovery, request logging,
// metrics, auth, and the three job endpoints wired to Deps.
func NewRouter(deps *Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(corsMiddleware())

	r.GET("/healthz", healthz)
	r.HEAD("/healthz", healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerSwagger(r)

	auth := r.Group("/")
	if deps.Config.Server.Bearer != "" {
		auth.Use(middleware.BearerAuth(deps.Config.Server.Bearer))
	}
	auth.POST("/submit", submitHandler(deps))
	auth.POST("/merge", mergeHandler(deps))
	auth.POST("/preview", previewHandler(deps))

	return r
}

func healthz(c *gin.Context) { c.Status(http.StatusOK) }

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func submitHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var spec docspec.DocumentSpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			respondError(c, apierr.Unprocessable("invalid document spec: %v", err))
			return
		}
		spec.ApplyDefaults(time.Now())
		if err := spec.Validate(deps.Config.Job.MaxAssetsPerDocument); err != nil {
			respondError(c, err)
			return
		}

		ws, err := newWorkspace(deps)
		if err != nil {
			respondError(c, err)
			return
		}
		reporter := callback.NewReporter(deps.Client, ws.Logger())
		renderer := render.New(ws, deps.Engine, reporter)
		go renderer.Run(context.WithoutCancel(c.Request.Context()), spec)

		c.Status(http.StatusOK)
	}
}

func mergeHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var spec docspec.MergeSpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			respondError(c, apierr.Unprocessable("invalid merge spec: %v", err))
			return
		}
		spec.ApplyDefaults(time.Now())
		if err := spec.Validate(); err != nil {
			respondError(c, err)
			return
		}

		ws, err := newWorkspace(deps)
		if err != nil {
			respondError(c, err)
			return
		}
		reporter := callback.NewReporter(deps.Client, ws.Logger())
		merger := merge.New(ws, reporter)
		go merger.Run(context.WithoutCancel(c.Request.Context()), spec)

		c.Status(http.StatusOK)
	}
}

func previewHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var spec docspec.DocumentSpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			respondError(c, apierr.Unprocessable("invalid document spec: %v", err))
			return
		}
		spec.ApplyDefaults(time.Now())
		if err := spec.Validate(deps.Config.Job.MaxAssetsPerDocument); err != nil {
			respondError(c, err)
			return
		}

		ws, err := newWorkspace(deps)
		if err != nil {
			respondError(c, err)
			return
		}
		renderer := render.New(ws, deps.Engine, nil)
		out, err := renderer.Preview(c.Request.Context(), spec)
		if err != nil {
			respondError(c, err)
			return
		}
		c.String(http.StatusOK, out)
	}
}

func newWorkspace(deps *Deps) (*workspace.Workspace, error) {
	return workspace.New(logger.ParseLevel(deps.Config.Log.Level), deps.Client, deps.Storage, &deps.Config.Job, &deps.Config.S3)
}

func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apierr.StatusCode(err), gin.H{"error": apierr.DisplayError(err)})
}
