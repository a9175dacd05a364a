package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rqpush/rqpush/internal/domain"
)

func newDigestCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "digest CONTENTS",
		Short: "Print the SHA-256 digest of an envelope's contents",
		Long: "Compute hex(sha256(contents + secret)) the same way the envelope builder does. " +
			"Pass - to read the contents from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contents := args[0]
			if contents == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				contents = string(data)
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.Digest(contents, secret))
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Shared secret appended before hashing")
	return cmd
}
