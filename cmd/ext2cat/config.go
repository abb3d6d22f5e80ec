package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envVarPrefix = "EXT2CAT"

// Config holds the defaults of the command line flags.
type Config struct {
	Image   string `envconfig:"IMAGE"`
	Mmap    bool   `envconfig:"MMAP"    default:"false"`
	Verbose bool   `envconfig:"VERBOSE" default:"false"`
}

func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}
	return &c, nil
}
