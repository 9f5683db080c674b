package reference

import (
	"sort"
	"strings"
)

// SensorEntry is one catalog entry for the sensor-selection wizard.
type SensorEntry struct {
	Name       string `yaml:"name"`
	Measurand  string `yaml:"measurand"`  // temperature, pressure, level, flow, position, proximity, distance
	Technology string `yaml:"technology"` // rtd, radar, inductive, ...
	Output     string `yaml:"output"`     // 4-20mA, discrete PNP, quadrature, ...

	// Environments the sensor suits (general, washdown, hazardous,
	// high-temp, outdoor, non-contact).
	Environments []string `yaml:"environments"`

	// MaxRangeM is the sensing range in meters; zero for contact devices.
	MaxRangeM float64 `yaml:"max_range_m,omitempty"`

	Notes string `yaml:"notes"`
}

// SuitsEnvironment reports whether the entry lists the environment.
func (s SensorEntry) SuitsEnvironment(env string) bool {
	for _, e := range s.Environments {
		if strings.EqualFold(e, env) {
			return true
		}
	}
	return false
}

// SensorCriteria narrows the sensor catalog. Measurand is required; the
// other fields are skipped when zero.
type SensorCriteria struct {
	Measurand   string
	Environment string

	// Output matches as a case-insensitive substring, so "4-20" finds
	// both "4-20mA" and "4-20mA HART".
	Output string

	// DistanceM is the required sensing distance; entries with a shorter
	// range, and contact devices, are excluded when set.
	DistanceM float64
}

// SelectSensors returns catalog entries matching the criteria. An
// environment keeps entries that list it plus general-duty entries, with
// exact matches first.
func (t *Tables) SelectSensors(c SensorCriteria) []SensorEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []SensorEntry
	for _, s := range t.sensors {
		if !strings.EqualFold(s.Measurand, c.Measurand) {
			continue
		}
		if c.Environment != "" && !s.SuitsEnvironment(c.Environment) && !s.SuitsEnvironment("general") {
			continue
		}
		if c.Output != "" && !strings.Contains(strings.ToLower(s.Output), strings.ToLower(c.Output)) {
			continue
		}
		if c.DistanceM > 0 && s.MaxRangeM < c.DistanceM {
			continue
		}
		out = append(out, s)
	}

	if c.Environment != "" {
		// Exact environment matches first; general-duty entries after.
		// Stable to keep catalog order within each group.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SuitsEnvironment(c.Environment) && !out[j].SuitsEnvironment(c.Environment)
		})
	}
	return out
}

// Measurands lists the distinct measured quantities in the catalog, sorted.
func (t *Tables) Measurands() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, s := range t.sensors {
		m := strings.ToLower(s.Measurand)
		if _, ok := seen[m]; !ok {
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// Environments lists the distinct environment tags in the catalog, sorted.
func (t *Tables) Environments() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, s := range t.sensors {
		for _, e := range s.Environments {
			e = strings.ToLower(e)
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				out = append(out, e)
			}
		}
	}
	sort.Strings(out)
	return out
}
