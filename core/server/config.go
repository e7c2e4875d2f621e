package server

import "fmt"

// Config holds configuration for the HTTP trigger server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Validate checks that the server can be started safely. An empty API key
// would expose the sync trigger to anyone who can reach the port.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("server port is empty")
	}
	if c.ApiKey == "" {
		return fmt.Errorf("server api key is empty")
	}
	return nil
}
