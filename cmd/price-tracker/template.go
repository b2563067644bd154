package main

import "text/template"

var resultTemplate = template.Must(template.New("resultTemplate").Parse(
	`{{ if .HasPrice -}}
💵 Price: {{ .Price }}
{{ end -}}
`,
))
