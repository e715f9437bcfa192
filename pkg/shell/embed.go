package shell

import (
	"embed"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Completion script templates, compiled into the binary at build time
//
//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("shell").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"dquote":  escapeDoubleQuoted,
			"shquote": singleQuote,
			"shwords": singleQuoteWords,
			"fquote":  fishQuote,
			"fwords":  fishWords,
		}).
		ParseFS(templateFS, "templates/*.tmpl"),
)
