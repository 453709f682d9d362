package cmd

import (
	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var (
		lang      string
		checkOnly bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing installation to the latest release",
		Long: `Update compares the installed version against the latest available
release and, if they differ, downloads and unpacks the new one. The locale
recorded at install time is reused unless --lang overrides it.

Examples:
  foxup update            # Update if a newer release exists
  foxup update --check    # Only report whether an update exists`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !checkOnly {
				if err := requireRoot("update"); err != nil {
					return err
				}
			}
			return newManager().Update(cmd.Context(), lang, checkOnly)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Locale to update to (defaults to the recorded locale)")
	cmd.Flags().BoolVarP(&checkOnly, "check", "c", false, "Check for an update without installing it")

	return cmd
}
