package config

import (
	"fmt"

	"cuelang.org/go/cue"
)

// parseScenarios extracts the scenarios list. The schema has already checked
// field types and enumerations.
func parseScenarios(v cue.Value) ([]Scenario, error) {
	lv := v.LookupPath(cue.ParsePath("scenarios"))
	it, err := lv.List()
	if err != nil {
		return nil, fmt.Errorf("invalid type for field: scenarios (expected list)")
	}
	var out []Scenario
	seen := map[string]struct{}{}
	for i := 0; it.Next(); i++ {
		sv := it.Value()
		s := Scenario{Number: DefaultNumber}
		if !optionalString(sv, "name", &s.Name) {
			return nil, fmt.Errorf("scenarios[%d]: missing name", i)
		}
		if !optionalString(sv, "action", &s.Action) {
			return nil, fmt.Errorf("scenarios[%d]: missing action", i)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario name: %q", s.Name)
		}
		seen[s.Name] = struct{}{}
		optionalString(sv, "start", &s.Start)
		optionalString(sv, "decrement", &s.Decrement)
		for _, f := range []struct {
			name string
			dst  *int
		}{
			{"seed", &s.Seed},
			{"code", &s.Code},
			{"number", &s.Number},
		} {
			if _, err := optionalInt(sv, f.name, f.dst); err != nil {
				return nil, fmt.Errorf("scenarios[%d]: %w", i, err)
			}
		}
		out = append(out, s)
	}
	return out, nil
}
