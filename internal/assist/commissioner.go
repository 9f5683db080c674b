package assist

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"plcortex/internal/history"
)

// CommissionRequest describes a commissioning guidance request.
type CommissionRequest struct {
	// DriveFamily selects the terminal map ("altivar-320"). Optional.
	DriveFamily string

	// Application describes the machine and control scheme, required.
	Application string
}

var commissionTemplate = template.Must(template.New("commission").Parse(
	`Produce a commissioning checklist for the following application.

Application:
{{.Application}}
{{if .TerminalContext}}
{{.TerminalContext}}{{end}}
Respond with a numbered commissioning procedure covering:
1. Pre-power checks (wiring, grounding, safety circuit).
2. Parameter configuration in commissioning order, with terminal
   assignments where the terminal map above applies.
3. First-rotation test with the load decoupled.
4. Loaded verification and what to record for the commissioning report.`))

// Commission returns step-by-step commissioning guidance, merging the drive
// family's terminal map into the prompt when known.
func (a *Assistant) Commission(ctx context.Context, req CommissionRequest) (string, error) {
	if strings.TrimSpace(req.Application) == "" {
		return "", fmt.Errorf("assist: application description required")
	}

	var terminalContext string
	if req.DriveFamily != "" {
		m, err := a.tables.TerminalMap(req.DriveFamily)
		if err != nil {
			// A named but unknown family is a user error worth surfacing:
			// the guidance would silently lack the terminal map otherwise.
			return "", fmt.Errorf("assist: %w (known families: %v)", err, a.tables.Families())
		}
		terminalContext = renderTerminalMap(m)
	}

	var sb strings.Builder
	err := commissionTemplate.Execute(&sb, struct {
		CommissionRequest
		TerminalContext string
	}{req, terminalContext})
	if err != nil {
		return "", fmt.Errorf("assist: assemble commissioning prompt: %w", err)
	}

	out, err := a.complete(ctx, "commission", sb.String())
	if err != nil {
		return "", err
	}

	summary := "commissioning guidance"
	if req.DriveFamily != "" {
		summary = fmt.Sprintf("commissioning guidance for %s", req.DriveFamily)
	}
	a.record(history.KindCommission, summary, req)
	return out, nil
}
