package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rqpush/rqpush/internal/adapters/outbound/config"
	"github.com/rqpush/rqpush/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		endpoint string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .rqpush.yaml configuration file",
		Long:  "Create a .rqpush.yaml with the intake endpoint and commented defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := (domain.ProjectConfig{Endpoint: endpoint}).Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(endpoint)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8000", "Intake endpoint URL")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .rqpush.yaml")

	return cmd
}

func generateConfig(endpoint string) string {
	host := "rqpush"
	if u, err := url.Parse(endpoint); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}

	return fmt.Sprintf(`# rqpush configuration
# Values here are defaults; command-line flags override them.

endpoint: %s

# The shared secret is appended to the contents before hashing. Prefer the
# %s environment variable over committing it here.
# shared_secret: change-me

priority: 0
ttl: 0
timeout_seconds: %d

# Record every send in .rqpush/history/sends.json.
history: true

# templates:
#   title: "[{{app}}] {{notification}}"
#   text: "{{notification}}"
#   html: "<p>{{{notification}}}</p>"

values:
  lang: %s
  # host: %s
`, endpoint, config.SecretEnv, domain.DefaultTimeoutSeconds, domain.DefaultLang, host)
}
