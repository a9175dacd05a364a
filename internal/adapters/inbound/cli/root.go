package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rqpush/rqpush/internal/adapters/outbound/transport"
	"github.com/rqpush/rqpush/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	transport.UserAgent = "rqpush/" + version

	cmd := &cobra.Command{
		Use:   "rqpush",
		Short: "Push notifications to an rqueue intake",
		Long: "rqpush builds a notification, renders its fields from templates, signs the payload " +
			"with an optional shared secret and posts it to a notification queue.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error, off)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newDigestCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// logger builds the command logger on stderr from --log-level.
func logger(cmd *cobra.Command) zerolog.Logger {
	level := "warn"
	if f := cmd.Flag("log-level"); f != nil {
		level = f.Value.String()
	}
	return logging.New(cmd.ErrOrStderr(), level)
}
