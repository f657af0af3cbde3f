// Command vcdgen writes Value Change Dump files, either from a built-in
// counter demo or from TOML scenario files.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("vcdgen")

func newRootCmd() *cobra.Command {
	var verbose int
	root := &cobra.Command{
		Use:           "vcdgen",
		Short:         "Generate Value Change Dump files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	root.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	root.AddCommand(newCounterCmd(), newRenderCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
}
