package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDetectCmd prints the resolved host profile.
func newDetectCmd(flags func() flagOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Print the detected OS and deployment profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(flags())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "os: %s\nprofile: %s\n",
				rc.host.OS, rc.host.Profile)
			return nil
		},
	}
}
