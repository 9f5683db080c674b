package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"plcortex/internal/reference"
)

// Wizard step progression for sensor selection.
const (
	stepMeasurand = iota
	stepEnvironment
	stepOutput
	stepDistance
	stepDone
)

// SensorWizard narrows the sensor catalog through guided questions: the
// quantity measured, the installation environment, the required output
// type, and the sensing distance.
type SensorWizard struct {
	styles Styles
	input  textinput.Model
	step   int
	errMsg string

	measurands   []string
	environments []string

	criteria  reference.SensorCriteria
	completed bool
	cancelled bool
}

// NewSensorWizard creates the wizard over the loaded catalog's measurands
// and environment tags.
func NewSensorWizard(styles Styles, measurands, environments []string) *SensorWizard {
	ti := textinput.New()
	ti.Placeholder = "number or name"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return &SensorWizard{
		styles:       styles,
		input:        ti,
		step:         stepMeasurand,
		measurands:   measurands,
		environments: environments,
	}
}

// Result returns the collected criteria once the wizard completed.
func (w *SensorWizard) Result() (reference.SensorCriteria, bool) {
	return w.criteria, w.completed
}

func (w *SensorWizard) Init() tea.Cmd {
	return textinput.Blink
}

func (w *SensorWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			w.cancelled = true
			return w, tea.Quit
		case tea.KeyEnter:
			w.advance(strings.TrimSpace(w.input.Value()))
			if w.step == stepDone {
				return w, tea.Quit
			}
			w.input.SetValue("")
			return w, nil
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

// pickChoice resolves a numbered or named selection from choices. Empty
// input selects nothing.
func pickChoice(value string, choices []string) (string, error) {
	if value == "" {
		return "", nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > len(choices) {
			return "", fmt.Errorf("enter 1-%d", len(choices))
		}
		return choices[n-1], nil
	}
	for _, c := range choices {
		if strings.EqualFold(c, value) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown choice %q", value)
}

// advance validates the entered value and moves to the next step. Invalid
// input stays on the current step with an error line.
func (w *SensorWizard) advance(value string) {
	w.errMsg = ""

	switch w.step {
	case stepMeasurand:
		choice, err := pickChoice(value, w.measurands)
		if err != nil {
			w.errMsg = err.Error()
			return
		}
		if choice == "" {
			w.errMsg = "a measured quantity is required"
			return
		}
		w.criteria.Measurand = choice
		w.step = stepEnvironment

	case stepEnvironment:
		choice, err := pickChoice(value, w.environments)
		if err != nil {
			w.errMsg = err.Error()
			return
		}
		w.criteria.Environment = choice
		w.step = stepOutput

	case stepOutput:
		w.criteria.Output = value
		w.step = stepDistance

	case stepDistance:
		if value != "" {
			d, err := strconv.ParseFloat(value, 64)
			if err != nil || d < 0 {
				w.errMsg = "enter a distance in meters, or leave blank"
				return
			}
			w.criteria.DistanceM = d
		}
		w.completed = true
		w.step = stepDone
	}
}

func (w *SensorWizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.styles.Title.Render("Sensor selection"))
	sb.WriteString("\n\n")

	writeChoices := func(choices []string) {
		for i, c := range choices {
			sb.WriteString(w.styles.Muted.Render(fmt.Sprintf("  %d. %s", i+1, c)))
			sb.WriteString("\n")
		}
	}

	switch w.step {
	case stepMeasurand:
		sb.WriteString(w.styles.Body.Render("What is being measured?"))
		sb.WriteString("\n")
		writeChoices(w.measurands)
	case stepEnvironment:
		sb.WriteString(w.styles.Body.Render("Installation environment (blank for any):"))
		sb.WriteString("\n")
		writeChoices(w.environments)
	case stepOutput:
		sb.WriteString(w.styles.Body.Render("Required output (4-20mA, discrete, IO-Link; blank for any):"))
		sb.WriteString("\n")
	case stepDistance:
		sb.WriteString(w.styles.Body.Render("Sensing distance in meters (blank if contact):"))
		sb.WriteString("\n")
	case stepDone:
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(w.styles.Prompt.Render("> "))
	sb.WriteString(w.input.View())
	sb.WriteString("\n")

	if w.errMsg != "" {
		sb.WriteString(w.styles.Error.Render(w.errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(w.styles.Muted.Render("enter to confirm, esc to cancel"))
	sb.WriteString("\n")

	return sb.String()
}
