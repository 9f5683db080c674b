// Package reference holds the static engineering reference tables that back
// the calculators and assistance prompts: NEC ampacity and motor full-load
// currents, drive fault codes, thermocouple data, and VFD terminal maps.
//
// The built-in tables are embedded at compile time. User-supplied YAML files
// in the configured override directory are merged over them, so a site can
// add its own drive families or fault codes without rebuilding.
package reference

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"plcortex/internal/logging"
)

//go:embed data
var embeddedTables embed.FS

// AmpacityRow is one conductor size from NEC 310.16 (copper).
type AmpacityRow struct {
	Size         string  `yaml:"size"`
	CircularMils float64 `yaml:"circular_mils"`
	Amps60C      float64 `yaml:"amps_60c"`
	Amps75C      float64 `yaml:"amps_75c"`
	Amps90C      float64 `yaml:"amps_90c"`
}

// Amps returns the ampacity for the given insulation temperature rating.
func (r AmpacityRow) Amps(tempRating int) (float64, error) {
	switch tempRating {
	case 60:
		return r.Amps60C, nil
	case 75:
		return r.Amps75C, nil
	case 90:
		return r.Amps90C, nil
	default:
		return 0, fmt.Errorf("reference: unsupported temperature rating %d (want 60, 75, or 90)", tempRating)
	}
}

// MotorFLCRow is one horsepower entry from NEC 430.250 / 430.248.
type MotorFLCRow struct {
	HP       float64 `yaml:"hp"`
	Amps115V float64 `yaml:"amps_115v,omitempty"`
	Amps208V float64 `yaml:"amps_208v,omitempty"`
	Amps230V float64 `yaml:"amps_230v,omitempty"`
	Amps460V float64 `yaml:"amps_460v,omitempty"`
	Amps575V float64 `yaml:"amps_575v,omitempty"`
}

// FaultCode is one drive fault-code entry with diagnosis context.
type FaultCode struct {
	Family      string   `yaml:"family"`
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Causes      []string `yaml:"causes"`
	Checks      []string `yaml:"checks"`
}

// Thermocouple describes one thermocouple type.
type Thermocouple struct {
	Type              string  `yaml:"type"`
	PositiveMaterial  string  `yaml:"positive_material"`
	NegativeMaterial  string  `yaml:"negative_material"`
	ANSIPositiveColor string  `yaml:"ansi_positive_color"`
	ANSINegativeColor string  `yaml:"ansi_negative_color"`
	ANSIJacketColor   string  `yaml:"ansi_jacket_color"`
	IECPositiveColor  string  `yaml:"iec_positive_color"`
	IECNegativeColor  string  `yaml:"iec_negative_color"`
	RangeCMin         float64 `yaml:"range_c_min"`
	RangeCMax         float64 `yaml:"range_c_max"`
	ToleranceC        float64 `yaml:"tolerance_c"`
}

// Terminal is one control terminal on a drive.
type Terminal struct {
	Label    string `yaml:"label"`
	Function string `yaml:"function"`
	Notes    string `yaml:"notes,omitempty"`
}

// TerminalMap is the control terminal layout for one drive family.
type TerminalMap struct {
	Family    string     `yaml:"family"`
	Drive     string     `yaml:"drive"`
	Terminals []Terminal `yaml:"terminals"`
}

// Tables is the loaded, merged reference data set. Lookups are safe for
// concurrent use; Reload swaps the data under the lock.
type Tables struct {
	mu sync.RWMutex

	ampacity      []AmpacityRow
	flcThree      []MotorFLCRow
	flcSingle     []MotorFLCRow
	faults        []FaultCode
	thermocouples []Thermocouple
	terminalMaps  []TerminalMap
	sensors       []SensorEntry

	overrideDir string
}

type ampacityFile struct {
	Ampacity []AmpacityRow `yaml:"ampacity"`
}

type motorFLCFile struct {
	MotorFLC struct {
		ThreePhase  []MotorFLCRow `yaml:"three_phase"`
		SinglePhase []MotorFLCRow `yaml:"single_phase"`
	} `yaml:"motor_flc"`
}

type faultCodeFile struct {
	FaultCodes []FaultCode `yaml:"fault_codes"`
}

type thermocoupleFile struct {
	Thermocouples []Thermocouple `yaml:"thermocouples"`
}

type terminalMapFile struct {
	TerminalMaps []TerminalMap `yaml:"terminal_maps"`
}

type sensorFile struct {
	Sensors []SensorEntry `yaml:"sensors"`
}

// Load parses the embedded tables and merges any override files found in
// overrideDir (pass "" to skip overrides).
func Load(overrideDir string) (*Tables, error) {
	timer := logging.StartTimer(logging.CategoryReference, "Load")
	defer timer.Stop()

	t := &Tables{overrideDir: overrideDir}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload re-parses the embedded tables and override directory. Used at load
// time and by the override watcher.
func (t *Tables) Reload() error {
	var (
		amp     ampacityFile
		flc     motorFLCFile
		faults  faultCodeFile
		tc      thermocoupleFile
		tm      terminalMapFile
		sensors sensorFile
	)

	// The embedded files are independent; parse them concurrently.
	var g errgroup.Group
	g.Go(func() error { return readEmbedded("data/ampacity.yaml", &amp) })
	g.Go(func() error { return readEmbedded("data/motor_flc.yaml", &flc) })
	g.Go(func() error { return readEmbedded("data/fault_codes.yaml", &faults) })
	g.Go(func() error { return readEmbedded("data/thermocouples.yaml", &tc) })
	g.Go(func() error { return readEmbedded("data/terminal_maps.yaml", &tm) })
	g.Go(func() error { return readEmbedded("data/sensors.yaml", &sensors) })
	if err := g.Wait(); err != nil {
		return err
	}

	merged := overrideSet{
		Ampacity:      amp.Ampacity,
		FaultCodes:    faults.FaultCodes,
		Thermocouples: tc.Thermocouples,
		TerminalMaps:  tm.TerminalMaps,
		Sensors:       sensors.Sensors,
	}
	if t.overrideDir != "" {
		ov, err := readOverrides(t.overrideDir)
		if err != nil {
			return err
		}
		merged.Ampacity = append(merged.Ampacity, ov.Ampacity...)
		merged.FaultCodes = append(merged.FaultCodes, ov.FaultCodes...)
		merged.Thermocouples = append(merged.Thermocouples, ov.Thermocouples...)
		merged.TerminalMaps = append(merged.TerminalMaps, ov.TerminalMaps...)
		merged.Sensors = append(merged.Sensors, ov.Sensors...)
	}

	// Single swap: concurrent lookups see either the old data set or the
	// fully merged new one, never the embedded tables without overrides.
	t.mu.Lock()
	t.ampacity = merged.Ampacity
	t.flcThree = flc.MotorFLC.ThreePhase
	t.flcSingle = flc.MotorFLC.SinglePhase
	t.faults = merged.FaultCodes
	t.thermocouples = merged.Thermocouples
	t.terminalMaps = merged.TerminalMaps
	t.sensors = merged.Sensors
	t.mu.Unlock()

	logging.Get(logging.CategoryReference).Info(
		"tables loaded: %d ampacity rows, %d fault codes, %d terminal maps",
		len(merged.Ampacity), len(merged.FaultCodes), len(merged.TerminalMaps))
	return nil
}

func readEmbedded(path string, out interface{}) error {
	data, err := fs.ReadFile(embeddedTables, path)
	if err != nil {
		return fmt.Errorf("reference: read embedded %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("reference: parse %s: %w", path, err)
	}
	return nil
}

// overrideSet collects entries from override files. Override files use the
// same document shapes as the embedded tables and may mix sections.
type overrideSet struct {
	Ampacity      []AmpacityRow  `yaml:"ampacity"`
	FaultCodes    []FaultCode    `yaml:"fault_codes"`
	Thermocouples []Thermocouple `yaml:"thermocouples"`
	TerminalMaps  []TerminalMap  `yaml:"terminal_maps"`
	Sensors       []SensorEntry  `yaml:"sensors"`
}

// readOverrides gathers entries from every YAML file in dir without touching
// the live tables; Reload swaps the merged result in as one unit.
func readOverrides(dir string) (overrideSet, error) {
	var out overrideSet
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return out, fmt.Errorf("reference: read override dir: %w", err)
	}

	log := logging.Get(logging.CategoryReference)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return out, fmt.Errorf("reference: read override %s: %w", path, err)
		}

		var doc overrideSet
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return out, fmt.Errorf("reference: parse override %s: %w", path, err)
		}

		out.Ampacity = append(out.Ampacity, doc.Ampacity...)
		out.FaultCodes = append(out.FaultCodes, doc.FaultCodes...)
		out.Thermocouples = append(out.Thermocouples, doc.Thermocouples...)
		out.TerminalMaps = append(out.TerminalMaps, doc.TerminalMaps...)
		out.Sensors = append(out.Sensors, doc.Sensors...)

		log.Debug("merged override file %s", e.Name())
	}
	return out, nil
}

// AmpacityFor returns the table row for a conductor size ("12", "1/0",
// "250").
func (t *Tables) AmpacityFor(size string) (AmpacityRow, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, r := range t.ampacity {
		if r.Size == size {
			return r, nil
		}
	}
	return AmpacityRow{}, fmt.Errorf("reference: no ampacity entry for size %q", size)
}

// MinSizeForCurrent returns the smallest conductor whose ampacity at the
// given temperature rating covers amps. Rows are assumed ordered smallest
// conductor first, as the embedded table is.
func (t *Tables) MinSizeForCurrent(amps float64, tempRating int) (AmpacityRow, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, r := range t.ampacity {
		a, err := r.Amps(tempRating)
		if err != nil {
			return AmpacityRow{}, err
		}
		if a >= amps {
			return r, nil
		}
	}
	return AmpacityRow{}, fmt.Errorf("reference: no conductor in table rated for %.1f A at %d degC", amps, tempRating)
}

// MotorFLC returns the NEC full-load current for a motor. phase is 1 or 3;
// voltage must match a table column (115/208/230/460/575 as applicable).
func (t *Tables) MotorFLC(hp float64, voltage int, phase int) (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var rows []MotorFLCRow
	switch phase {
	case 1:
		rows = t.flcSingle
	case 3:
		rows = t.flcThree
	default:
		return 0, fmt.Errorf("reference: phase must be 1 or 3, got %d", phase)
	}

	for _, r := range rows {
		if r.HP != hp {
			continue
		}
		var amps float64
		switch voltage {
		case 115:
			amps = r.Amps115V
		case 208:
			amps = r.Amps208V
		case 230:
			amps = r.Amps230V
		case 460:
			amps = r.Amps460V
		case 575:
			amps = r.Amps575V
		default:
			return 0, fmt.Errorf("reference: no FLC column for %dV", voltage)
		}
		if amps == 0 {
			return 0, fmt.Errorf("reference: no %d-phase FLC for %.2g HP at %dV", phase, hp, voltage)
		}
		return amps, nil
	}
	return 0, fmt.Errorf("reference: no %d-phase FLC table entry for %.2g HP", phase, hp)
}

// Fault returns the fault-code entry for a family/code pair. Matching is
// case-insensitive on both fields.
func (t *Tables) Fault(family, code string) (FaultCode, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, f := range t.faults {
		if strings.EqualFold(f.Family, family) && strings.EqualFold(f.Code, code) {
			return f, nil
		}
	}
	return FaultCode{}, fmt.Errorf("reference: no fault %q for family %q", code, family)
}

// FaultsForFamily lists all fault codes for a drive family.
func (t *Tables) FaultsForFamily(family string) []FaultCode {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []FaultCode
	for _, f := range t.faults {
		if strings.EqualFold(f.Family, family) {
			out = append(out, f)
		}
	}
	return out
}

// Thermocouple returns the entry for a thermocouple type letter ("K").
func (t *Tables) Thermocouple(tcType string) (Thermocouple, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, tc := range t.thermocouples {
		if strings.EqualFold(tc.Type, tcType) {
			return tc, nil
		}
	}
	return Thermocouple{}, fmt.Errorf("reference: unknown thermocouple type %q", tcType)
}

// Thermocouples returns all thermocouple entries.
func (t *Tables) Thermocouples() []Thermocouple {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Thermocouple(nil), t.thermocouples...)
}

// TerminalMap returns the terminal map for a drive family.
func (t *Tables) TerminalMap(family string) (TerminalMap, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, m := range t.terminalMaps {
		if strings.EqualFold(m.Family, family) {
			return m, nil
		}
	}
	return TerminalMap{}, fmt.Errorf("reference: no terminal map for family %q", family)
}

// Families lists the known drive families, sorted, for CLI help and the
// commissioning wizard.
func (t *Tables) Families() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, m := range t.terminalMaps {
		if !seen[m.Family] {
			seen[m.Family] = true
			out = append(out, m.Family)
		}
	}
	for _, f := range t.faults {
		if !seen[f.Family] {
			seen[f.Family] = true
			out = append(out, f.Family)
		}
	}
	sort.Strings(out)
	return out
}
