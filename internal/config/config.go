package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/origadmin/scaffold/internal/errors"
)

// Config holds the complete configuration for a generation run.
type Config struct {
	// Output is the directory artifacts are generated into.
	Output string `mapstructure:"output"`
	// DryRun generates into memory and prints a txtar archive instead of writing files.
	DryRun   bool           `mapstructure:"dry_run"`
	Log      LogConfig      `mapstructure:"log"`
	Naming   NamingConfig   `mapstructure:"naming"`
	Template TemplateConfig `mapstructure:"template"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// NamingConfig configures the names the model factories synthesize.
type NamingConfig struct {
	// IdentifierType is the type of synthesized <Entity>Id properties.
	IdentifierType string `mapstructure:"identifier_type"`
	// DtoSuffix is appended to entity names for data-transfer types.
	DtoSuffix string `mapstructure:"dto_suffix"`
	// ContextSuffix is appended to the application name for persistence contexts.
	ContextSuffix string `mapstructure:"context_suffix"`
}

// TemplateConfig configures the template collaborator.
type TemplateConfig struct {
	// CacheSize bounds the number of parsed templates kept in memory.
	CacheSize int `mapstructure:"cache_size"`
	// Dirs lists directories whose .tpl files override the embedded templates.
	Dirs []string `mapstructure:"dirs"`
}

// configNames are searched for in the working directory when no file is given.
var configNames = []string{"scaffold.yaml", "scaffold.yml", ".scaffold.toml", "scaffold.toml"}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", ".")
	v.SetDefault("dry_run", false)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("naming.identifier_type", "Guid")
	v.SetDefault("naming.dto_suffix", "Dto")
	v.SetDefault("naming.context_suffix", "DbContext")
	v.SetDefault("template.cache_size", 64)
	v.SetDefault("template.dirs", []string{})
}

// NewViper creates a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads configuration in precedence order: defaults < config file <
// environment. A .env file in the working directory is loaded first so its
// variables take part in the environment step. An empty file means the
// working directory is searched for one of the well-known names.
func Load(v *viper.Viper, file string) (*Config, error) {
	_ = godotenv.Load()

	if file == "" {
		file = findConfigFile(".")
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Unmarshalling plain defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func findConfigFile(dir string) string {
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
