package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/ui"
)

// newPlanCmd renders the provisioning plan without executing anything.
func newPlanCmd(flags func() flagOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the provisioning plan for this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(flags())
			if err != nil {
				return err
			}
			if !rc.host.Supported() {
				return errors.New(errors.ErrUnsupportedOS, MsgErrUnsupported)
			}

			inst, err := rc.newInstaller()
			if err != nil {
				return err
			}
			steps := rc.newPlanner(inst).Plan(rc.host)
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderPlan(rc.host, steps))
			return nil
		},
	}
}
