package cmd

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/confgen/confgen/errors"
	"github.com/confgen/confgen/logger"
)

//go:embed confgen.sample.yaml
var sampleConfig []byte

var initDir string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a confgen.yaml in the target directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(initDir, "confgen.yaml")
		if _, err := os.Stat(path); err == nil {
			// Never clobber a hand-edited config.
			return errors.Wrapf(errors.ErrOutputExists, "%s", path)
		}
		if err := os.MkdirAll(initDir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", initDir)
		}
		if err := os.WriteFile(path, sampleConfig, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
		logger.Infow("wrote generation config", "path", path)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initDir, "dir", "d", ".", "Directory to scaffold into")
}
