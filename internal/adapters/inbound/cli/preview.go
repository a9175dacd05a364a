package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rqpush/rqpush/internal/adapters/outbound/tui"
)

func newPreviewCmd() *cobra.Command {
	var flags notificationFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a notification and its envelope without sending",
		Long:  "Resolve every field of a notification, build the signed envelope and print it. Nothing is sent.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, cfg, err := project(flags.path)
			if err != nil {
				return err
			}
			in, err := flags.input(cmd, absPath)
			if err != nil {
				return err
			}

			svc := newSendService(cmd, absPath, cfg)
			priority, ttl, secret := flags.envelopeParams(cmd, cfg)
			prepared, err := svc.Prepare(svc.Build(in), priority, ttl, secret)
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				return renderJSON(cmd, prepared)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPreview(prepared))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
