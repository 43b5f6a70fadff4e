// Package config defines the helpdesk configuration model and the YAML
// loading pipeline (parse, env expansion, decode, defaults, validation).
package config

// Config is the root configuration for the helpdesk CLI.
type Config struct {
	// LLM configures the model provider backing all agents.
	LLM LLMConfig `yaml:"llm,omitempty"`

	// User is the support context attached to every request.
	User UserConfig `yaml:"user,omitempty"`

	// Logger configures structured logging.
	Logger LoggerConfig `yaml:"logger,omitempty"`

	// Streaming enables incremental output in the support command.
	// Default: true.
	Streaming *bool `yaml:"streaming,omitempty"`
}

// SetDefaults applies defaults to all sections.
func (c *Config) SetDefaults() {
	c.LLM.SetDefaults()
	c.User.SetDefaults()
	c.Logger.SetDefaults()
	if c.Streaming == nil {
		c.Streaming = BoolPtr(true)
	}
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.User.Validate(); err != nil {
		return err
	}
	return c.Logger.Validate()
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// BoolValue dereferences p, falling back to def when nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
