package stage

// Record is one output event of a scenario.
// Using a struct ensures deterministic JSON field ordering.
type Record struct {
	Locator  string    `json:"locator"`
	Scenario string    `json:"scenario"`
	Action   string    `json:"action"`
	Index    int       `json:"index"`
	Step     string    `json:"step,omitempty"`
	Value    int64     `json:"value"`
	Text     string    `json:"text,omitempty"`
	Mapped   any       `json:"mapped,omitempty"`
	Error    *RecError `json:"error,omitempty"`
}

// key identifies the scenario a record belongs to in error reports.
func (r Record) key() string {
	return scenarioKey(r.Locator, r.Scenario)
}

func scenarioKey(locator, name string) string {
	if locator == "" {
		return name
	}
	return locator + "#" + name
}

// globals exposes the record to Lua scripts.
func (r Record) globals() map[string]any {
	return map[string]any{
		"locator":  r.Locator,
		"scenario": r.Scenario,
		"action":   r.Action,
		"index":    r.Index,
		"step":     r.Step,
		"value":    r.Value,
		"text":     r.Text,
	}
}
