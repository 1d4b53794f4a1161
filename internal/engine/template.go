package engine

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Player-visible event lines are defined as templates so world builders can
// rephrase them without touching command code.
const (
	departureTemplate = "{{ .Name }} leaves {{ .Direction }}."
	arrivalTemplate   = "{{ .Name }} arrives from {{ .Direction }}."
	welcomeTemplate   = "Welcome, {{ .Name }}!\nRole: {{ .Role }}\n\n{{ .Room }}"
	kickedTemplate    = "You have been kicked by {{ .Actor }}."
)

// eventData carries the values event templates may reference.
type eventData struct {
	Name      string
	Direction string
	Role      string
	Room      string
	Actor     string
}

var templateFuncs = sprig.TxtFuncMap()

// expandTemplate expands a template string using the provided data.
func expandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
