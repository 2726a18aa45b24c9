package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/safeharbor/internal/browser"
)

var demoPause time.Duration

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().DurationVar(&demoPause, "pause", 2*time.Second, "Pause between steps")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through a scripted browsing session",
	Long:  "Plays a short tour: a trusted shop, an unknown site asking for a\npassword, a question to the assistant, and a scam page with the\nway back to safety.",
	RunE:  runDemo,
}

// demoScript is typed into the console one line at a time.
var demoScript = []struct {
	say  string
	line string
}{
	{"Opening a trusted shop.", "go https://www.amazon.com"},
	{"Visiting a site nobody has checked yet.", "go https://great-deals-outlet.shop"},
	{"Promising to be careful.", "1"},
	{"Clicking into the password box.", "field type=password name=pwd"},
	{"Trusting the site anyway.", "2"},
	{"Asking the assistant a question.", "ask is this site safe?"},
	{"Following a link to a scam page.", "go http://prize-scam-winner.net"},
	{"Choosing the way back to safety.", "2"},
}

func runDemo(cmd *cobra.Command, args []string) error {
	fmt.Println("=== safeharbor demo ===")
	fmt.Println()

	// The demo never pages a caregiver.
	cfg := *settings()
	cfg.Alerts = nil
	tb, err := newTerminalBrowser(os.Stdout, browser.NewRender(os.Stdout), &cfg, "", "")
	if err != nil {
		return err
	}
	defer tb.Close()

	for i, step := range demoScript {
		fmt.Printf("--- %d. %s (> %s)\n", i+1, step.say, step.line)
		tb.console.Exec(step.line)
		time.Sleep(demoPause + cfg.Timing.ReplyDelay)
		fmt.Println()
	}

	fmt.Println("=== demo complete ===")
	return nil
}
