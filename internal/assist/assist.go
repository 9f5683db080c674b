// Package assist implements the LLM-backed assistance features: fault
// diagnosis, PLC code migration, and commissioning guidance. Its own logic
// is prompt assembly and response handling; the reasoning is delegated to
// the configured backend.
package assist

import (
	"context"
	"fmt"
	"strings"

	"plcortex/internal/history"
	"plcortex/internal/llm"
	"plcortex/internal/logging"
	"plcortex/internal/reference"
)

// Assistant wires the LLM client, reference tables, and history store
// behind the three assistance operations.
type Assistant struct {
	client  llm.Client
	tables  *reference.Tables
	history *history.Store // optional; nil disables recording
}

// New creates an Assistant. history may be nil.
func New(client llm.Client, tables *reference.Tables, hist *history.Store) (*Assistant, error) {
	if client == nil {
		return nil, fmt.Errorf("assist: LLM client required")
	}
	if tables == nil {
		return nil, fmt.Errorf("assist: reference tables required")
	}
	return &Assistant{client: client, tables: tables, history: hist}, nil
}

const systemPrompt = `You are an experienced industrial controls engineer assisting with
plant-floor troubleshooting and commissioning. Be specific and practical.
Always put electrical safety first: call out lockout/tagout and arc-flash
precautions whenever a step involves opening an enclosure or working near
energized equipment. When you are not sure, say so and recommend the
vendor manual section to check instead of guessing.`

func (a *Assistant) complete(ctx context.Context, op, prompt string) (string, error) {
	timer := logging.StartTimer(logging.CategoryAssist, op)
	defer timer.Stop()

	out, err := a.client.CompleteWithSystem(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("assist: %s request failed: %w", op, err)
	}
	return out, nil
}

func (a *Assistant) record(kind history.Kind, summary string, payload interface{}) {
	if a.history == nil {
		return
	}
	if err := a.history.Record(kind, summary, payload); err != nil {
		// History is convenience, not correctness.
		logging.Get(logging.CategoryAssist).Warn("history record failed: %v", err)
	}
}

// renderFault formats a fault-code table entry as prompt context.
func renderFault(f reference.FaultCode) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fault %s (%s): %s\n", f.Code, f.Name, f.Description)
	if len(f.Causes) > 0 {
		sb.WriteString("Documented causes:\n")
		for _, c := range f.Causes {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}
	if len(f.Checks) > 0 {
		sb.WriteString("Documented checks:\n")
		for _, c := range f.Checks {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}
	return sb.String()
}

// renderTerminalMap formats a terminal map as prompt context.
func renderTerminalMap(m reference.TerminalMap) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Control terminals for %s:\n", m.Drive)
	for _, term := range m.Terminals {
		fmt.Fprintf(&sb, "- %s: %s", term.Label, term.Function)
		if term.Notes != "" {
			fmt.Fprintf(&sb, " (%s)", term.Notes)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
