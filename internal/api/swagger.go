package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerSwagger registers minimal Swagger/OpenAPI endpoints describing the
// three job endpoints plus /healthz and /metrics.
func registerSwagger(r *gin.Engine) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>papers — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "papers", "version": "v0.1.0" },
  "paths": {
    "/submit": {
      "post": {
        "summary": "Submit a document render job",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"template_url":{"type":"string"},"asset_urls":{"type":"array","items":{"type":"string"}},"callback_url":{"type":"string"},"output_filename":{"type":"string"},"variables":{"type":"object"},"no_escape_tex":{"type":"boolean"}}}}}},
        "responses": { "200": { "description": "job accepted" }, "422": { "description": "invalid document spec" }, "403": { "description": "missing or invalid bearer token" } }
      }
    },
    "/merge": {
      "post": {
        "summary": "Submit a PDF merge job",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"asset_urls":{"type":"array","items":{"type":"string"}},"callback_url":{"type":"string"},"output_filename":{"type":"string"}}}}}},
        "responses": { "200": { "description": "job accepted" }, "422": { "description": "invalid merge spec" }, "403": { "description": "missing or invalid bearer token" } }
      }
    },
    "/preview": {
      "post": { "summary": "Synchronously render a template and return raw LaTeX", "responses": { "200": { "description": "rendered LaTeX" }, "422": { "description": "invalid document spec" } } }
    },
    "/healthz": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
