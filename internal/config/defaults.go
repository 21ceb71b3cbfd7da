package config

// NewDefaults returns a Config populated with all default values.
// The step naming defaults match what the Tekton controller reports for
// steps declared without a name.
func NewDefaults() *Config {
	base := 1
	clearSteps := true
	return &Config{
		Steps: StepsConfig{
			UnnamedPrefix:    "unnamed-",
			UnnamedIndexBase: &base,
			ErrorReason:      "Error",
			ClearUnexecuted:  &clearSteps,
		},
		Load: LoadConfig{
			Concurrency: 4,
		},
		Display: DisplayConfig{
			TimeFormat: "relative",
		},
	}
}
