package cmd

import (
	"github.com/spf13/cobra"

	"github.com/confgen/confgen/config"
	"github.com/confgen/confgen/errors"
	"github.com/confgen/confgen/generate"
)

var configPath string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate schema modules from the generation config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		if err := generate.Run(cfg.Confgen); err != nil {
			if errors.IsTargetNotFound(err) {
				return errors.WithHint(err,
					"check that the class name is an exported struct type in the named package")
			}
			return err
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&configPath, "config", "c", "confgen.yaml", "Generation config file")
}
