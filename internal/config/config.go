// Package config provides environment-driven application configuration.
package config

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// GitHub holds GitHub API configuration.
	GitHub GitHubConfig
	// Jira holds issue tracker configuration (optional integration).
	Jira JiraConfig
	// Cache holds cache store configuration.
	Cache CacheConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:  LoadServerConfigFromEnv(),
		Logger:  LoadLoggerConfigFromEnv(),
		GitHub:  LoadGitHubConfigFromEnv(),
		Jira:    LoadJiraConfigFromEnv(),
		Cache:   LoadCacheConfigFromEnv(),
		GinMode: GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration. It returns a *ConfigurationError
// carrying every failed variable so startup can report them all at once.
// A configuration error is fatal: no fetch may be attempted after one.
func (c Config) Validate() error {
	var errs []ValidationError

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, ValidationError{Variable: "SERVER", Message: err.Error()})
	}
	if err := c.Logger.Validate(); err != nil {
		errs = append(errs, ValidationError{Variable: "LOGGER", Message: err.Error()})
	}

	errs = append(errs, c.GitHub.Validate()...)
	errs = append(errs, c.Jira.Validate()...)
	errs = append(errs, c.Cache.Validate()...)

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		errs = append(errs, ValidationError{
			Variable: "GIN_MODE",
			Message:  "must be one of: debug, release, test",
		})
	}

	if len(errs) > 0 {
		return &ConfigurationError{Errors: errs}
	}
	return nil
}
