package cmd

import (
	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the latest Firefox release",
		Long: `Install resolves the latest available release, downloads and unpacks it
into the install directory, and creates the launcher symlink and desktop
menu entry. Running it over an existing installation upgrades in place.

Examples:
  foxup install             # Install with the default locale (en-US)
  foxup install --lang ja   # Install the Japanese build`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoot("install"); err != nil {
				return err
			}
			return newManager().Install(cmd.Context(), lang)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Locale to install (e.g. de, ja, en-US)")

	return cmd
}
