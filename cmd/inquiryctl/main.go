// Command inquiryctl submits and triages contact submissions through the
// inquiry API.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inquirydesk/backend/internal/client"
	"github.com/inquirydesk/backend/internal/config"
	"github.com/inquirydesk/backend/internal/logging"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	apiURL string
	token  string
}

func (o *globalOptions) client() *client.Client {
	return client.New(o.apiURL, o.token)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "inquiryctl",
		Short: "Submit and triage contact submissions",
		Long: `inquiryctl talks to the inquiry API.

Commands:
  submit      - Send a contact form submission
  privacy     - Print the personal-information notice
  list        - List submissions with optional search and status filter
  show        - Show one submission
  set-status  - Change the status of a submission
  dashboard   - Open the interactive triage dashboard`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", cfg.APIURL, "inquiry API base URL (INQUIRY_API_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", cfg.APIToken, "admin bearer token (INQUIRY_API_TOKEN)")

	root.AddCommand(
		newSubmitCmd(opts),
		newPrivacyCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newSetStatusCmd(opts),
		newDashboardCmd(opts),
	)
	return root
}

func main() {
	cfg := config.Read()
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel))

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
