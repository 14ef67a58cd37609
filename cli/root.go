// Package cli implements phishctl, a command line front end to the prediction pipeline.
package cli

import (
	"phishguard-api/bootstrap"
	"phishguard-api/config"

	"github.com/spf13/cobra"
)

// NewRoot builds the phishctl command tree.
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "phishctl",
		Short:         "phishctl: classify URLs and inspect stored predictions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newCheckCmd(openApp))
	cmd.AddCommand(newHistoryCmd(openStore))
	cmd.AddCommand(newFeaturesCmd(newExtractor))

	return cmd
}

func openApp() (*bootstrap.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}
