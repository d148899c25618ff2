package commands

import (
	"github.com/spf13/cobra"
)

// newStowCmd reconciles dotfile packages without touching provisioning.
func newStowCmd(flags func() flagOverrides) *cobra.Command {
	var (
		all  bool
		apps string
	)

	cmd := &cobra.Command{
		Use:   "stow [package...]",
		Short: "Symlink dotfile packages into the home directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(flags())
			if err != nil {
				return err
			}
			if err := ensureDotfiles(cmd.Context(), rc); err != nil {
				return err
			}

			packages := args
			if len(packages) == 0 {
				packages, err = selectPackages(rc, all, apps)
				if err != nil {
					return err
				}
			}
			return runStow(rc, packages)
		},
	}

	cmd.Flags().BoolVar(&all, "all", true, MsgFlagAll)
	cmd.Flags().StringVar(&apps, "apps", "", MsgFlagApps)

	return cmd
}
