// Package config models and loads the confgen.yaml generation config.
package config

// Config is the root of a confgen.yaml document.
type Config struct {
	Confgen ConfgenConf `mapstructure:"confgen"`
}

// ConfgenConf configures one generation run.
type ConfgenConf struct {
	// OutputDir is the directory generated modules are written under.
	OutputDir string `mapstructure:"output_dir"`

	// ModulePathPattern maps a module path to its output file, with
	// {{module_path}} as the placeholder (e.g. "{{module_path}}.py").
	ModulePathPattern string `mapstructure:"module_path_pattern"`

	// Header is prepended verbatim to every generated file.
	Header string `mapstructure:"header"`

	// PackagePrefix is an optional Python package the generated modules
	// live under, used when one generated module imports another.
	PackagePrefix string `mapstructure:"package_prefix"`

	Modules []ModuleConf `mapstructure:"modules"`
}

// ModuleConf names one Go package and the types to generate schemas for.
type ModuleConf struct {
	// Name is the Go import path of the target package.
	Name string `mapstructure:"name"`

	// Classes are the exported struct type names to generate, processed
	// in the order written here.
	Classes []string `mapstructure:"classes"`

	DefaultFlags DefaultFlags `mapstructure:"default_flags"`
}

// DefaultFlags are the optional schema-level directives prepended to every
// generated record of a module. Nil means "do not emit the flag".
type DefaultFlags struct {
	// Convert is the instantiation conversion mode: none, partial or all.
	Convert *string `mapstructure:"convert"`

	// Recursive toggles recursive merging/instantiation.
	Recursive *bool `mapstructure:"recursive"`
}
