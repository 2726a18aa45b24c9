package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/safeharbor/internal/browser"
	"github.com/ppiankov/safeharbor/internal/client"
	"github.com/ppiankov/safeharbor/internal/service"
)

var (
	askURL    string
	askSites  string
	askRemote string
)

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askURL, "url", "", "Website the question is about")
	askCmd.Flags().StringVar(&askSites, "sites", "", "Path to site lists YAML (default from config)")
	askCmd.Flags().StringVar(&askRemote, "remote", "", "Ask a running advisor (host:port) instead of local lists")
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the safety assistant a question",
	Example: `  safeharbor ask "is this site safe?" --url https://www.amazon.com
  safeharbor ask "how do I spot a scam"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	var (
		answer service.Answer
		err    error
	)
	if askRemote != "" {
		c, cerr := client.New(askRemote)
		if cerr != nil {
			return cerr
		}
		defer c.Close()
		answer, err = c.Ask(text, askURL)
	} else {
		svc, serr := localService(askSites)
		if serr != nil {
			return serr
		}
		answer, err = svc.Ask(text, askURL)
	}
	if err != nil {
		return err
	}

	render := browser.NewRender(os.Stdout)
	fmt.Print(render(answer.Text))
	return nil
}
