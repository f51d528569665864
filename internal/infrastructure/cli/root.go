package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "trailgauge",
	Version: Version,
	Short:   "Terminal client for the AuditTrail transparency service",
	Long: `Trailgauge submits a question to an AuditTrail backend, shows the
returned transparency report, and renders the extracted confidence
score as an animated gauge.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "trailgauge.yaml", "path to the configuration file")
}
