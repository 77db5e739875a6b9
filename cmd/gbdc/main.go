// Command gbdc is the dispatcher of spec.md S6: it selects one of
// {gbdhash, normalize, isp, extract, gates, solve} and prints the result of
// running that tool against one input DIMACS file.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("gbdc failed")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var tool string
	var patterns, semantic bool
	var repeat int

	cmd := &cobra.Command{
		Use:   "gbdc [flags] [tool] file",
		Short: "Analyse the gate structure of a CNF formula",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if repeat <= 0 {
				repeat = 1
			}
			selected, path := tool, args[0]
			if len(args) == 2 {
				selected, path = args[0], args[1]
			}
			return dispatch(selected, path, os.Stdout, config{
				Patterns: patterns,
				Semantic: semantic,
				Repeat:   repeat,
			})
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "", fmt.Sprintf("tool to run (%s)", validToolsHelp()))
	cmd.Flags().BoolVar(&patterns, "patterns", true, "enable structural pattern classification")
	cmd.Flags().BoolVar(&semantic, "semantic", true, "enable semantic (oracle-backed) classification")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "number of outer analyzer passes (clamped to 1 if <= 0)")

	return cmd
}

func validToolsHelp() string {
	return "gbdhash, normalize, isp, extract, gates, solve; default gbdhash"
}
