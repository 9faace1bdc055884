// Command trilog is the executable entry point for the inference
// engine's external interfaces (§6): one or more input-file paths,
// plus --visualize/-v and --interactive/-i, built on spf13/cobra
// rather than the teacher's bare flag package (see DESIGN.md).
package main

import (
	"fmt"
	"os"

	"github.com/arrowcoil/trilog/cli"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var visualize bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "trilog FILE [FILE...]",
		Short: "A tri-valued backward-chaining propositional inference engine",
		Long: "trilog loads rule files (rules, initial facts, and queries over\n" +
			"single-uppercase-letter atoms) and reports true/false/ambiguous for\n" +
			"every query.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, visualize, interactive)
		},
	}

	cmd.Flags().BoolVarP(&visualize, "visualize", "v", false, "dump the resolver trace for each query")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "enter an interactive shell after resolving each file's queries")

	return cmd
}

// run loads and resolves each file in turn. Per §6, the exit status is
// non-zero only when a file cannot be read or parsed; ambiguous or
// individually-failed query resolutions do not affect it, but a
// resolution failure is still surfaced so the caller can decide.
func run(files []string, visualize, interactive bool) error {
	cli.InitDisplay()

	var anyUnreadable error
	for _, path := range files {
		store, err := cli.LoadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			anyUnreadable = err
			continue
		}

		cli.ShowWarnings(store)
		if err := cli.RunQueries(store, visualize); err != nil {
			// A resolution failure on one query doesn't abort the
			// file or the batch (§7); it was already printed inline.
			_ = err
		}

		if interactive {
			repl, err := cli.NewREPL(store, visualize)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			repl.Run()
		}
	}
	return anyUnreadable
}
