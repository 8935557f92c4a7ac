package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordlookup/internal/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Name, app.BuildVersion())
		},
	}
}
