package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/client"
	"github.com/ppiankov/safeharbor/internal/service"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

var (
	classifySites  string
	classifyRemote string
	classifyJSON   bool
)

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifySites, "sites", "", "Path to site lists YAML (default from config)")
	classifyCmd.Flags().StringVar(&classifyRemote, "remote", "", "Ask a running advisor (host:port) instead of local lists")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print verdicts as JSON lines")
}

var classifyCmd = &cobra.Command{
	Use:   "classify <url>...",
	Short: "Rate one or more websites",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

// localService builds a one-shot service over the configured lists.
func localService(sitesFlag string) (*service.Service, error) {
	lists, hash, err := sitelist.LoadWithHash(pick(sitesFlag, settings().SitesPath))
	if err != nil {
		return nil, err
	}
	c := classify.New(lists)
	c.SetLists(lists, hash)
	return service.New(c, nil), nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	var classifyOne func(string) (service.Verdict, error)

	if classifyRemote != "" {
		c, err := client.New(classifyRemote)
		if err != nil {
			return err
		}
		defer c.Close()
		classifyOne = c.Classify
	} else {
		svc, err := localService(classifySites)
		if err != nil {
			return err
		}
		classifyOne = svc.Classify
	}

	for _, u := range args {
		v, err := classifyOne(u)
		if err != nil {
			return fmt.Errorf("%s: %w", u, err)
		}
		if classifyJSON {
			out, _ := json.Marshal(v)
			fmt.Println(string(out))
			continue
		}
		fmt.Printf("%-8s %-30s %s\n", v.Label, v.Domain, v.Rationale)
	}
	return nil
}
