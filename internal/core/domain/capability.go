package domain

// CapabilityConfig is the unified configuration shape handed to optimizer
// factories. Type selects the registered factory ("bedrock", "mock");
// Options carries adapter-specific knobs.
type CapabilityConfig struct {
	Type    string            `mapstructure:"type"`
	Region  string            `mapstructure:"region"`
	Profile string            `mapstructure:"profile"`
	Options map[string]string `mapstructure:"options"`
}
