package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rqpush/rqpush/internal/adapters/outbound/tui"
	"github.com/rqpush/rqpush/internal/domain"
)

type sendResult struct {
	Endpoint   string `json:"endpoint"`
	SHA256     string `json:"sha256,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Status     string `json:"status,omitempty"`
	Body       string `json:"body,omitempty"`
	Error      string `json:"error,omitempty"`
}

func newSendCmd() *cobra.Command {
	var (
		flags    notificationFlags
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a notification",
		Long: "Build a notification, resolve its fields from templates and POST the signed envelope " +
			"to the intake endpoint. Exits non-zero unless the endpoint answers 2xx.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, cfg, err := project(flags.path)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("endpoint") {
				endpoint = cfg.Endpoint
			}
			if endpoint == "" {
				return fmt.Errorf("%w: pass --endpoint or set endpoint in .rqpush.yaml", domain.ErrEmptyEndpoint)
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

			resp, sendErr := svc.Deliver(cmd.Context(), prepared, endpoint)

			if flags.jsonOutput {
				res := sendResult{Endpoint: endpoint}
				if prepared.Message.SHA256 != nil {
					res.SHA256 = *prepared.Message.SHA256
				}
				if resp != nil {
					res.StatusCode = resp.StatusCode
					res.Status = resp.Status
					res.Body = string(resp.Body)
				}
				if sendErr != nil {
					res.Error = sendErr.Error()
				}
				if err := renderJSON(cmd, res); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSendResult(endpoint, resp, sendErr))
			}

			switch {
			case sendErr != nil:
				return fmt.Errorf("sending notification: %w", sendErr)
			case !resp.OK():
				return fmt.Errorf("endpoint answered %s", resp.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Intake URL (overrides .rqpush.yaml)")
	flags.register(cmd)
	return cmd
}
