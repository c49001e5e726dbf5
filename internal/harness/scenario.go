package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a conformance test: an ordered sequence of service-layer
// operations executed against a fresh seeded store, with per-step
// expectations and a trace compared against a golden file.
type Scenario struct {
	// Name uniquely identifies the scenario; it doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Steps are executed in order against the same store.
	Steps []Step `yaml:"steps"`
}

// Step invokes one operation.
type Step struct {
	// Op names the operation; see the registry in harness.go.
	Op string `yaml:"op"`

	// Args are the operation arguments. Values are scalars or string
	// lists.
	Args map[string]any `yaml:"args,omitempty"`

	// Expect, when set, validates the step outcome.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected step outcome.
type Expect struct {
	// Error is the expected service error code ("" means success).
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one step is required", path)
	}
	return &sc, nil
}
