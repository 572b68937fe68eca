package config

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
)

// schemaSource closes the accepted shape of a scenario file.
const schemaSource = `
#Scenario: {
	name:       string & != ""
	action:     "recurse" | "greet" | "fact" | "fibo"
	seed?:      int
	start?:     "a" | "b"
	decrement?: "pre" | "post"
	code?:      int
	number?:    int & >=0
}

#Config: {
	configVersion: string
	scenarios: [...#Scenario]
	maxSteps?: int & >0
	errors?: {
		mode?:        "fail-fast" | "keep-going"
		embedErrors?: bool
	}
	lua?: {
		filterInline?: string
		mapInline?:    string
		reduceInline?: string
	}
	luaSandbox?: {
		timeoutMs?:        int & >=0
		instructionLimit?: int & >=0
		memoryLimitBytes?: int & >=0
	}
	output?: {
		format?: "lines" | "json" | "yaml"
		pretty?: bool
		out?:    string
	}
}
`

func validateSchema(v cue.Value) error {
	if !v.LookupPath(cue.ParsePath("scenarios")).Exists() {
		return fmt.Errorf("missing required field: scenarios")
	}
	schema := v.Context().CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("invalid schema: %v", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %s", firstSchemaError(err))
	}
	return nil
}

func firstSchemaError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	return strings.Join(strings.Fields(errs[0].Error()), " ")
}
