package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adamancini/foxup/internal/output"
)

func newStatusCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report the installed version and artifact health",
		Long: `Status reads the version record and independently verifies the install
directory, the launcher symlink, and the desktop entry. Individual check
failures are reported but never abort the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputFormat)
			if err != nil {
				return err
			}

			report := newManager().Status()
			if format == output.FormatText {
				printStyledReport(os.Stdout, report)
				return nil
			}
			return output.NewWriter(os.Stdout, format).Write(report)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
