package assist

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"plcortex/internal/history"
)

// MigrationRequest describes a PLC code migration job.
type MigrationRequest struct {
	SourcePlatform string
	TargetPlatform string

	// Program is the source program text, treated as opaque payload.
	Program string

	// Notes carries site-specific constraints (tag naming, addressing).
	Notes string
}

// Platform-pair translation notes merged into the prompt when available.
// Keys are "source->target" in normalized lowercase.
var migrationNotes = map[string]string{
	"rslogix500->studio5000": `SLC-500 data files (N7, B3, T4, C5) become tags; timer/counter
structures keep .PRE/.ACC/.DN members. MSG and PID instructions need
re-configuration, not translation. Address comments become tag descriptions.`,
	"step7->tia": `Absolute DB addressing should become symbolic access; UDTs carry over.
Re-check any pointer (ANY/POINTER) logic by hand. OB numbering differs for
cyclic interrupts.`,
	"studio5000->tia": `Rockwell AOIs map to TIA FBs with instance DBs. GSV/SSV system access
has no direct equivalent; use the matching system function blocks. Rework
produced/consumed tags as PROFINET i-device or PN/PN coupler transfers.`,
}

var migrationTemplate = template.Must(template.New("migration").Parse(
	`Translate the following PLC program from {{.SourcePlatform}} to {{.TargetPlatform}}.

{{if .PairNotes}}Platform translation notes:
{{.PairNotes}}

{{end}}{{if .Notes}}Site constraints:
{{.Notes}}

{{end}}Source program:
` + "```" + `
{{.Program}}
` + "```" + `

Respond with:
1. The translated program.
2. A table of constructs that have no direct equivalent and what you
   substituted.
3. Anything that must be verified on the target hardware before running.`))

// Migrate translates a PLC program between platforms via the backend.
func (a *Assistant) Migrate(ctx context.Context, req MigrationRequest) (string, error) {
	if strings.TrimSpace(req.SourcePlatform) == "" || strings.TrimSpace(req.TargetPlatform) == "" {
		return "", fmt.Errorf("assist: source and target platforms required")
	}
	if strings.TrimSpace(req.Program) == "" {
		return "", fmt.Errorf("assist: program text required")
	}
	if strings.EqualFold(req.SourcePlatform, req.TargetPlatform) {
		return "", fmt.Errorf("assist: source and target platforms are both %q", req.SourcePlatform)
	}

	pairKey := strings.ToLower(req.SourcePlatform) + "->" + strings.ToLower(req.TargetPlatform)

	var sb strings.Builder
	err := migrationTemplate.Execute(&sb, struct {
		MigrationRequest
		PairNotes string
	}{req, migrationNotes[pairKey]})
	if err != nil {
		return "", fmt.Errorf("assist: assemble migration prompt: %w", err)
	}

	out, err := a.complete(ctx, "migrate", sb.String())
	if err != nil {
		return "", err
	}

	a.record(history.KindMigration,
		fmt.Sprintf("migrated %s to %s (%d chars)", req.SourcePlatform, req.TargetPlatform, len(req.Program)),
		map[string]string{"source": req.SourcePlatform, "target": req.TargetPlatform})
	return out, nil
}
