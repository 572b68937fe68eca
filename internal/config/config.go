package config

import (
	"fmt"

	"cuelang.org/go/cue"
)

// Action names accepted in a scenario.
const (
	ActionRecurse = "recurse"
	ActionGreet   = "greet"
	ActionFact    = "fact"
	ActionFibo    = "fibo"
)

// DefaultNumber is the fixed input size of the fact/fibo actions.
const DefaultNumber = 10

// File is a parsed scenario file.
type File struct {
	Path          string
	ConfigVersion string
	MaxSteps      int
	HasMaxSteps   bool
	Scenarios     []Scenario
	Errors        Errors
	Lua           Lua
	LuaSandbox    LuaSandbox
	Output        Output
}

// Scenario is one named fixture invocation.
type Scenario struct {
	Name      string
	Action    string
	Seed      int
	Start     string
	Decrement string
	Code      int
	Number    int
}

// Errors holds optional error handling settings.
type Errors struct {
	Mode        string
	EmbedErrors bool
	HasMode     bool
	HasEmbed    bool
}

// Lua holds optional inline scripts.
type Lua struct {
	FilterInline string
	MapInline    string
	ReduceInline string
	HasFilter    bool
	HasMap       bool
	HasReduce    bool
}

// LuaSandbox holds optional sandbox limits.
type LuaSandbox struct {
	TimeoutMs           int
	InstructionLimit    int
	MemoryLimitBytes    int
	HasTimeoutMs        bool
	HasInstructionLimit bool
	HasMemoryLimitBytes bool
}

// Output holds optional output settings.
type Output struct {
	Format    string
	Pretty    bool
	Out       string
	HasFormat bool
	HasPretty bool
	HasOut    bool
}

// LoadAndValidate checks a scenario file without keeping the result.
func LoadAndValidate(path string) error {
	_, err := Parse(path)
	return err
}

// Parse compiles, validates and extracts a scenario file.
// Required fields:
//   - configVersion: string (supported version)
//   - scenarios: list of {name, action}
func Parse(path string) (File, error) {
	v, err := compileCUE(path)
	if err != nil {
		return File{}, err
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return File{}, err
	}
	f := File{Path: path}
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&f.ConfigVersion); err != nil {
		return File{}, fmt.Errorf("invalid value for configVersion: %v", err)
	}
	if err := checkConfigVersion(f.ConfigVersion); err != nil {
		return File{}, err
	}
	if err := validateSchema(v); err != nil {
		return File{}, err
	}
	f.Scenarios, err = parseScenarios(v)
	if err != nil {
		return File{}, err
	}
	if f.HasMaxSteps, err = optionalInt(v, "maxSteps", &f.MaxSteps); err != nil {
		return File{}, err
	}
	f.Errors = parseErrorsSection(v)
	f.Lua = parseLuaSection(v)
	if f.LuaSandbox, err = parseLuaSandboxSection(v); err != nil {
		return File{}, err
	}
	f.Output = parseOutputSection(v)
	return f, nil
}
