// Package templating wraps gonja, a Jinja2-style template engine, as the Go
// analogue of the source's Tera-based engine: it loads a named template from
// a local path and renders it against a JSON-like context, with two
// LaTeX-escaping filters registered (escape_tex / unescape_tex).
package templating

import (
	"fmt"

	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/exec"

	"github.com/papers/papers/internal/texutil"
)

// Engine compiles and renders a single named template.
type Engine struct {
	env *gonja.Environment
}

// New returns an Engine with escape_tex/unescape_tex filters registered.
func New() *Engine {
	env := gonja.DefaultEnvironment

	env.Filters.Register("escape_tex", escapeTexFilter)
	env.Filters.Register("unescape_tex", unescapeTexFilter)

	return &Engine{env: env}
}

// RenderFile compiles the template at path and renders it against context.
func (e *Engine) RenderFile(path string, context map[string]any) (string, error) {
	tpl, err := gonja.FromFile(path)
	if err != nil {
		return "", fmt.Errorf("compile template %s: %w", path, err)
	}
	out, err := tpl.Execute(exec.NewContext(context))
	if err != nil {
		return "", fmt.Errorf("render template %s: %w", path, err)
	}
	return out, nil
}

// RenderString compiles and renders an in-memory template source.
func (e *Engine) RenderString(source string, context map[string]any) (string, error) {
	tpl, err := gonja.FromString(source)
	if err != nil {
		return "", fmt.Errorf("compile template: %w", err)
	}
	out, err := tpl.Execute(exec.NewContext(context))
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

func escapeTexFilter(e *exec.Evaluator, in *exec.Value, params *exec.VarArgs) *exec.Value {
	s, ok := in.Interface().(string)
	if !ok {
		return in
	}
	return exec.AsValue(texutil.EscapeString(s))
}

func unescapeTexFilter(e *exec.Evaluator, in *exec.Value, params *exec.VarArgs) *exec.Value {
	s, ok := in.Interface().(string)
	if !ok {
		return in
	}
	return exec.AsValue(texutil.UnescapeString(s))
}
