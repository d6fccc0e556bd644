package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/confgen/confgen/errors"
)

// SetDefaults configures default values for all generation options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("confgen.output_dir", "gen")
	v.SetDefault("confgen.module_path_pattern", "{{module_path}}.py")
	v.SetDefault("confgen.header", "# Code generated by confgen. DO NOT EDIT.")
}

// LoadFromFile loads a generation config from a specific file path.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CONFGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	return LoadWithViper(v)
}

// LoadWithViper loads a generation config from a prepared Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the parts of a config the generator depends on.
func Validate(cfg *Config) error {
	if len(cfg.Confgen.Modules) == 0 {
		return errors.WithHint(
			errors.New("no modules configured"),
			"add a modules entry to confgen.yaml, or run 'confgen init' to scaffold one")
	}
	for _, m := range cfg.Confgen.Modules {
		if m.Name == "" {
			return errors.New("module with empty name")
		}
		if len(m.Classes) == 0 {
			return errors.Newf("module %s lists no classes", m.Name)
		}
		if m.DefaultFlags.Convert != nil {
			switch strings.ToLower(*m.DefaultFlags.Convert) {
			case "none", "partial", "all":
			default:
				return errors.Newf("module %s: invalid convert mode %q (expected none, partial or all)",
					m.Name, *m.DefaultFlags.Convert)
			}
		}
	}
	return nil
}
