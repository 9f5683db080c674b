package scaling

import (
	"fmt"
	"math"
	"strings"
	"text/template"
)

// Platform identifies a code-sample target for a scaling configuration.
type Platform string

const (
	// PlatformST renders IEC 61131-3 Structured Text (Siemens SCL,
	// CODESYS ST).
	PlatformST Platform = "st"

	// PlatformRockwell renders a Logix CPT (Compute) instruction
	// expression.
	PlatformRockwell Platform = "rockwell"
)

type codegenData struct {
	RawMin, RawMax float64
	EngMin, EngMax float64
	Clamp          bool
	EngLo, EngHi   float64
}

var stTemplate = template.Must(template.New("st").Parse(
	`// Analog input scaling: raw {{.RawMin}}..{{.RawMax}} -> eng {{.EngMin}}..{{.EngMax}}
engValue := (rawValue - {{.RawMin}}) / ({{.RawMax}} - {{.RawMin}})
            * ({{.EngMax}} - {{.EngMin}}) + {{.EngMin}};
{{- if .Clamp}}
IF engValue < {{.EngLo}} THEN
    engValue := {{.EngLo}};
ELSIF engValue > {{.EngHi}} THEN
    engValue := {{.EngHi}};
END_IF;
{{- end}}
`))

var rockwellTemplate = template.Must(template.New("rockwell").Parse(
	`CPT EngValue ((RawValue - {{.RawMin}}) / ({{.RawMax}} - {{.RawMin}}) * ({{.EngMax}} - {{.EngMin}})) + {{.EngMin}}
{{- if .Clamp}}
LIM {{.EngLo}} EngValue {{.EngHi}}
{{- end}}
`))

// CodeSample renders the mapping as controller code for the given platform.
// The sample uses the same affine form as Scale so a reviewer can check the
// two against each other term by term.
func (m Mapping) CodeSample(platform Platform) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	data := codegenData{
		RawMin: m.RawMin,
		RawMax: m.RawMax,
		EngMin: m.EngMin,
		EngMax: m.EngMax,
		Clamp:  m.Clamp,
		EngLo:  math.Min(m.EngMin, m.EngMax),
		EngHi:  math.Max(m.EngMin, m.EngMax),
	}

	var tmpl *template.Template
	switch platform {
	case PlatformST:
		tmpl = stTemplate
	case PlatformRockwell:
		tmpl = rockwellTemplate
	default:
		return "", fmt.Errorf("scaling: unknown code platform %q", platform)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("scaling: render code sample: %w", err)
	}
	return sb.String(), nil
}
