package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askSave bool
	askCopy bool
	askOut  string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Submit one question and print the transparency report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		defer services.Log.Sync()

		query := strings.Join(args, " ")
		result, err := services.Audit.Submit(cmd.Context(), query)
		if err != nil {
			return errors.New(statusFor(err, services.Audit.Endpoint()))
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Report.Text)
		if result.Score.Known {
			fmt.Fprintf(cmd.OutOrStdout(), "Confidence: %d%% (%s)\n",
				result.Visual.DisplayedPercent, result.Visual.Band.Label)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Confidence score unavailable.")
		}

		if askSave {
			exporter := services.Exporter
			if askOut != "" {
				exporter.Dir = askOut
			}
			path, err := exporter.Export(result.Report.Text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
		}

		if askCopy {
			if err := services.Clipboard.Copy(result.Report.Text); err != nil {
				// A failed copy must not read as a failed audit.
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Report copied to clipboard.")
			}
		}

		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askSave, "save", false, "export the report to a timestamped text file")
	askCmd.Flags().BoolVar(&askCopy, "copy", false, "copy the report to the clipboard")
	askCmd.Flags().StringVar(&askOut, "out", "", "directory for exported reports")
	RootCmd.AddCommand(askCmd)
}
