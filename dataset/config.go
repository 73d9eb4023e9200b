package dataset

// Config holds dataset store initialization parameters.
type Config struct {
	Dir string `json:"dir,omitempty" mapstructure:"dir"`
}

// DefaultConfig stores datasets in the working directory.
func DefaultConfig() Config {
	return Config{Dir: "."}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Dir != "" {
		c.Dir = source.Dir
	}
}

// NewStore creates a Store from configuration.
func NewStore(cfg *Config) Store {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	return NewFileStore(dir)
}
