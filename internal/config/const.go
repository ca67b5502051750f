// Package config implements the application constants and the viper-backed
// configuration of scaffold.
package config

// Global constants for the application.
const (
	Application = "scaffold"
	Description = "Render syntax models and generate solution scaffolds"
	WebSite     = "https://github.com/origadmin/scaffold"
	UI          = "scaffold"
)

// EnvPrefix is the prefix of environment variables bound to configuration keys.
const EnvPrefix = "SCAFFOLD"
