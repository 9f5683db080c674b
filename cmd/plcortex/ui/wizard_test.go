package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	testMeasurands   = []string{"distance", "flow", "level", "temperature"}
	testEnvironments = []string{"general", "hazardous", "washdown"}
)

func newTestWizard() *SensorWizard {
	return NewSensorWizard(DefaultStyles(), testMeasurands, testEnvironments)
}

func enter(t *testing.T, w *SensorWizard, value string) *SensorWizard {
	t.Helper()
	w.input.SetValue(value)
	model, _ := w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(*SensorWizard)
}

func TestSensorWizardFullFlow(t *testing.T) {
	w := newTestWizard()

	w = enter(t, w, "level")
	w = enter(t, w, "hazardous")
	w = enter(t, w, "4-20")
	w = enter(t, w, "12")

	c, ok := w.Result()
	if !ok {
		t.Fatal("wizard did not complete")
	}
	if c.Measurand != "level" || c.Environment != "hazardous" {
		t.Fatalf("unexpected criteria: %+v", c)
	}
	if c.Output != "4-20" || c.DistanceM != 12 {
		t.Fatalf("unexpected criteria: %+v", c)
	}
}

func TestSensorWizardNumberedSelection(t *testing.T) {
	w := newTestWizard()

	w = enter(t, w, "4") // temperature
	w = enter(t, w, "")  // any environment
	w = enter(t, w, "")  // any output
	w = enter(t, w, "")  // contact

	c, ok := w.Result()
	if !ok {
		t.Fatal("wizard did not complete")
	}
	if c.Measurand != "temperature" {
		t.Fatalf("expected temperature, got %q", c.Measurand)
	}
	if c.Environment != "" || c.Output != "" || c.DistanceM != 0 {
		t.Fatalf("expected open criteria, got %+v", c)
	}
}

func TestSensorWizardInvalidInputStays(t *testing.T) {
	w := newTestWizard()

	w = enter(t, w, "") // measurand is required
	if w.errMsg == "" {
		t.Fatal("expected error for blank measurand")
	}

	w = enter(t, w, "99")
	if w.errMsg == "" {
		t.Fatal("expected error for out-of-range number")
	}

	w = enter(t, w, "flow")
	if w.errMsg != "" {
		t.Fatalf("unexpected error: %s", w.errMsg)
	}

	w = enter(t, w, "1")
	w = enter(t, w, "")
	w = enter(t, w, "not-a-number")
	if w.errMsg == "" {
		t.Fatal("expected error for bad distance")
	}
	if _, ok := w.Result(); ok {
		t.Fatal("wizard should not be complete")
	}
}

func TestSensorWizardCancel(t *testing.T) {
	w := newTestWizard()

	model, _ := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	w = model.(*SensorWizard)

	if !w.cancelled {
		t.Fatal("expected cancellation")
	}
	if _, ok := w.Result(); ok {
		t.Fatal("cancelled wizard should not report completion")
	}
}
