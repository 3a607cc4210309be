package model

// Config controls what the front ends extract
type Config struct {
	IncludePrivate bool // Include private and protected members
	IncludeBodies  bool // Capture callable bodies
}

func DefaultConfig() *Config {
	return &Config{
		IncludePrivate: true,
		IncludeBodies:  true,
	}
}
