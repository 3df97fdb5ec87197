package harness

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed scenario_schema.cue
var scenarioSchemaCUE string

// ValidateScenarioBytes checks raw scenario YAML against the embedded
// CUE schema. Filename is used only for error positions.
//
// Schema validation runs before the strict YAML decode so that
// structural errors (wrong assertion type, float input values) are
// reported with schema context instead of as Go decoding failures.
func ValidateScenarioBytes(filename string, data []byte) error {
	cctx := cuecontext.New()

	schema := cctx.CompileString(scenarioSchemaCUE, cue.Filename("scenario_schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup #Scenario: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}

	val := cctx.BuildFile(file)
	if err := val.Err(); err != nil {
		return fmt.Errorf("build scenario value: %w", err)
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("scenario does not match schema: %w", err)
	}

	return nil
}
