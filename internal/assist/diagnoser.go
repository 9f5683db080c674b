package assist

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"plcortex/internal/history"
)

// DiagnosisRequest describes a fault to diagnose.
type DiagnosisRequest struct {
	// DriveFamily selects fault-code table context ("powerflex-525").
	// Optional; diagnosis proceeds without table context when unknown.
	DriveFamily string

	// FaultCode is the displayed code ("F004", "OCF"). Optional.
	FaultCode string

	// Equipment describes the machine and drive/PLC involved.
	Equipment string

	// Symptoms is the observed behavior, required.
	Symptoms string
}

var diagnosisTemplate = template.Must(template.New("diagnosis").Parse(
	`Diagnose an industrial equipment fault.

Equipment: {{.Equipment}}
{{- if .FaultCode}}
Displayed fault code: {{.FaultCode}}{{end}}
Observed symptoms:
{{.Symptoms}}
{{if .TableContext}}
Reference data for this fault:
{{.TableContext}}{{end}}
Respond with:
1. Ranked probable causes (most likely first) with reasoning.
2. A check procedure for each cause, in the order a technician should work.
3. Which checks are safe with the equipment energized and which require
   lockout/tagout.`))

// Diagnose assembles equipment context, matching fault-code reference data,
// and symptoms into a prompt and returns the backend's assessment.
func (a *Assistant) Diagnose(ctx context.Context, req DiagnosisRequest) (string, error) {
	if strings.TrimSpace(req.Symptoms) == "" {
		return "", fmt.Errorf("assist: symptoms required")
	}
	if strings.TrimSpace(req.Equipment) == "" {
		return "", fmt.Errorf("assist: equipment description required")
	}

	var tableContext string
	if req.DriveFamily != "" && req.FaultCode != "" {
		if f, err := a.tables.Fault(req.DriveFamily, req.FaultCode); err == nil {
			tableContext = renderFault(f)
		}
	}

	var sb strings.Builder
	err := diagnosisTemplate.Execute(&sb, struct {
		DiagnosisRequest
		TableContext string
	}{req, tableContext})
	if err != nil {
		return "", fmt.Errorf("assist: assemble diagnosis prompt: %w", err)
	}

	out, err := a.complete(ctx, "diagnose", sb.String())
	if err != nil {
		return "", err
	}

	summary := fmt.Sprintf("diagnosed %s", req.Equipment)
	if req.FaultCode != "" {
		summary = fmt.Sprintf("diagnosed %s on %s", req.FaultCode, req.Equipment)
	}
	a.record(history.KindDiagnosis, summary, req)
	return out, nil
}
