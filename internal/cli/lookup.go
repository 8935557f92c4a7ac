package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordlookup/internal/config"
)

func newLookupCmd() *cobra.Command {
	var (
		delay time.Duration
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "lookup WORD...",
		Short: "Look words up and print the rendered result",
		Long: "Runs each word through the search controller, exactly as the widget does, " +
			"and prints the HTML fragment it renders. Exits non-zero if any lookup ends in an error.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := loadApp(cmd.Context(), func(cfg *config.Config) {
				if cmd.Flags().Changed("delay") {
					cfg.Widget.SearchDelay = delay
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			status := cmd.ErrOrStderr()
			if quiet {
				status = io.Discard
			}
			c := a.NewController(newTerminalSurface(cmd.OutOrStdout(), status))

			var failed []string
			for _, raw := range args {
				st, _ := c.Submit(cmd.Context(), raw)
				if st.IsError() {
					failed = append(failed, raw)
				}
			}

			if len(failed) > 0 {
				return fmt.Errorf("%d of %d lookups failed: %s", len(failed), len(args), strings.Join(failed, ", "))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 0, "override the artificial delay before each lookup")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the loading indicator")
	return cmd
}
