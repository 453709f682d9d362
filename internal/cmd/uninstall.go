package cmd

import (
	"github.com/spf13/cobra"
)

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the managed Firefox installation",
		Long: `Uninstall removes the install directory, the launcher symlink, and the
desktop menu entry. Running it when nothing is installed succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoot("uninstall"); err != nil {
				return err
			}
			return newManager().Uninstall()
		},
	}
}
