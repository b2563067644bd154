package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/geniass/price-tracker/pkg/checker"
)

//go:embed templates
var templatesFs embed.FS

type BaseContext struct {
	PathPrefix string
}

// CheckerContext is everything the page needs: the shell plus the form state.
type CheckerContext struct {
	BaseContext
	checker.Snapshot
	// Notice is the blocking notification raised by the last check, if any.
	Notice string
}

func (c CheckerContext) ButtonLabel() string {
	if c.Loading {
		return "Checking..."
	}
	return "Check Price"
}

func RenderChecker(w io.Writer, c CheckerContext) error {
	t, err := template.ParseFS(templatesFs, "templates/index.html.tpl")
	if err != nil {
		return err
	}
	t, err = t.ParseFS(templatesFs, "templates/common/*")
	if err != nil {
		return err
	}

	err = t.Execute(w, c)
	if err != nil {
		return err
	}
	return nil
}

// RenderHome renders the shell with a freshly mounted, idle form.
func RenderHome(w io.Writer, c BaseContext) error {
	return RenderChecker(w, CheckerContext{BaseContext: c})
}
