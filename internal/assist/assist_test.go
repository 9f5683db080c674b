package assist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plcortex/internal/history"
	"plcortex/internal/reference"
)

// fakeClient captures prompts and returns a canned response.
type fakeClient struct {
	lastSystem string
	lastUser   string
	response   string
	err        error
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	return f.CompleteWithSystem(ctx, "", prompt)
}

func (f *fakeClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.response, f.err
}

func newTestAssistant(t *testing.T, fc *fakeClient) (*Assistant, *history.Store) {
	t.Helper()
	tables, err := reference.Load("")
	require.NoError(t, err)

	hist, err := history.NewStore(filepath.Join(t.TempDir(), "h.db"), 10)
	require.NoError(t, err)
	t.Cleanup(func() { hist.Close() })

	a, err := New(fc, tables, hist)
	require.NoError(t, err)
	return a, hist
}

func TestDiagnose(t *testing.T) {
	t.Run("prompt carries fault table context", func(t *testing.T) {
		fc := &fakeClient{response: "check the line fuses"}
		a, hist := newTestAssistant(t, fc)

		out, err := a.Diagnose(context.Background(), DiagnosisRequest{
			DriveFamily: "powerflex-525",
			FaultCode:   "F004",
			Equipment:   "line 3 conveyor VFD",
			Symptoms:    "trips a few seconds after start",
		})
		require.NoError(t, err)
		assert.Equal(t, "check the line fuses", out)

		assert.Contains(t, fc.lastUser, "F004")
		assert.Contains(t, fc.lastUser, "UnderVoltage", "fault table entry merged into prompt")
		assert.Contains(t, fc.lastUser, "trips a few seconds after start")
		assert.Contains(t, fc.lastSystem, "lockout/tagout")

		entries, err := hist.Recent(1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, history.KindDiagnosis, entries[0].Kind)
	})

	t.Run("unknown fault code still diagnoses", func(t *testing.T) {
		fc := &fakeClient{response: "ok"}
		a, _ := newTestAssistant(t, fc)

		_, err := a.Diagnose(context.Background(), DiagnosisRequest{
			DriveFamily: "powerflex-525",
			FaultCode:   "F999",
			Equipment:   "mixer drive",
			Symptoms:    "random trips",
		})
		require.NoError(t, err)
		assert.NotContains(t, fc.lastUser, "Reference data")
	})

	t.Run("missing symptoms rejected", func(t *testing.T) {
		a, _ := newTestAssistant(t, &fakeClient{})
		_, err := a.Diagnose(context.Background(), DiagnosisRequest{Equipment: "x"})
		assert.Error(t, err)
	})

	t.Run("backend failure propagates", func(t *testing.T) {
		fc := &fakeClient{err: errors.New("boom")}
		a, hist := newTestAssistant(t, fc)

		_, err := a.Diagnose(context.Background(), DiagnosisRequest{
			Equipment: "press", Symptoms: "won't start",
		})
		require.Error(t, err)

		entries, err := hist.Recent(5)
		require.NoError(t, err)
		assert.Empty(t, entries, "failures are not recorded")
	})
}

func TestMigrate(t *testing.T) {
	t.Run("known pair includes translation notes", func(t *testing.T) {
		fc := &fakeClient{response: "translated"}
		a, _ := newTestAssistant(t, fc)

		out, err := a.Migrate(context.Background(), MigrationRequest{
			SourcePlatform: "RSLogix500",
			TargetPlatform: "Studio5000",
			Program:        "XIC B3:0/0 OTE O:0/0",
		})
		require.NoError(t, err)
		assert.Equal(t, "translated", out)
		assert.Contains(t, fc.lastUser, "XIC B3:0/0")
		assert.Contains(t, fc.lastUser, "N7, B3, T4, C5", "pair notes merged")
	})

	t.Run("unknown pair still migrates", func(t *testing.T) {
		fc := &fakeClient{response: "ok"}
		a, _ := newTestAssistant(t, fc)

		_, err := a.Migrate(context.Background(), MigrationRequest{
			SourcePlatform: "GX Works",
			TargetPlatform: "TIA",
			Program:        "LD X0",
		})
		require.NoError(t, err)
		assert.NotContains(t, fc.lastUser, "Platform translation notes")
	})

	t.Run("same platform rejected", func(t *testing.T) {
		a, _ := newTestAssistant(t, &fakeClient{})
		_, err := a.Migrate(context.Background(), MigrationRequest{
			SourcePlatform: "TIA", TargetPlatform: "tia", Program: "x",
		})
		assert.Error(t, err)
	})

	t.Run("empty program rejected", func(t *testing.T) {
		a, _ := newTestAssistant(t, &fakeClient{})
		_, err := a.Migrate(context.Background(), MigrationRequest{
			SourcePlatform: "a", TargetPlatform: "b",
		})
		assert.Error(t, err)
	})
}

func TestCommission(t *testing.T) {
	t.Run("terminal map merged into prompt", func(t *testing.T) {
		fc := &fakeClient{response: "checklist"}
		a, _ := newTestAssistant(t, fc)

		_, err := a.Commission(context.Background(), CommissionRequest{
			DriveFamily: "altivar-320",
			Application: "10 HP exhaust fan, 2-wire run from the BMS",
		})
		require.NoError(t, err)
		assert.Contains(t, fc.lastUser, "Altivar 320")
		assert.Contains(t, fc.lastUser, "LI1")
	})

	t.Run("unknown family is an error with guidance", func(t *testing.T) {
		a, _ := newTestAssistant(t, &fakeClient{})
		_, err := a.Commission(context.Background(), CommissionRequest{
			DriveFamily: "mystery-9000",
			Application: "fan",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "known families")
	})

	t.Run("no family works without terminal context", func(t *testing.T) {
		fc := &fakeClient{response: "ok"}
		a, _ := newTestAssistant(t, fc)

		_, err := a.Commission(context.Background(), CommissionRequest{
			Application: "servo indexing table",
		})
		require.NoError(t, err)
		assert.NotContains(t, fc.lastUser, "Control terminals")
	})
}

func TestNewValidation(t *testing.T) {
	tables, err := reference.Load("")
	require.NoError(t, err)

	_, err = New(nil, tables, nil)
	assert.Error(t, err)

	_, err = New(&fakeClient{}, nil, nil)
	assert.Error(t, err)

	// nil history is allowed.
	a, err := New(&fakeClient{response: "ok"}, tables, nil)
	require.NoError(t, err)
	_, err = a.Diagnose(context.Background(), DiagnosisRequest{Equipment: "e", Symptoms: "s"})
	assert.NoError(t, err)
}
