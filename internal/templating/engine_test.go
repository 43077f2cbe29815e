package templating

import (
	"strings"
	"testing"
)

func TestRenderStringSubstitutesVariables(t *testing.T) {
	e := New()
	out, err := e.RenderString(`\documentclass{article}\begin{document}hello, {{who}}\end{document}`, map[string]any{"who": "peter"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `\documentclass{article}\begin{document}hello, peter\end{document}`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestEscapeTexFilterEscapesMetacharacters(t *testing.T) {
	e := New()
	out, err := e.RenderString(`{{ name | escape_tex }}`, map[string]any{"name": "70% & John"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `\&`) || !strings.Contains(out, `\%`) {
		t.Errorf("expected escaped metacharacters, got %q", out)
	}
}
