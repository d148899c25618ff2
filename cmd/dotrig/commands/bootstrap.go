package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotrig/pkg/errors"
)

// newBootstrapCmd runs only the provisioning plan: packages, shell, tool
// repositories. No dotfiles involved.
func newBootstrapCmd(flags func() flagOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Install packages and set up the shell, nothing else",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(flags())
			if err != nil {
				return err
			}
			if !rc.host.Supported() {
				rc.sink.Error(MsgErrUnsupported)
				return errors.New(errors.ErrUnsupportedOS, MsgErrUnsupported)
			}
			rc.sink.Info("Host: " + rc.host.String())
			return runBootstrap(cmd.Context(), rc)
		},
	}
}
