// Command jsonshape validates JSON documents against declarative YAML
// schema documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	jsonshape "github.com/jsonshape/jsonshape"
	"github.com/jsonshape/jsonshape/loader"
	"github.com/jsonshape/jsonshape/sink"
)

var errInvalid = errors.New("validation failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "jsonshape",
		Short:        "Validate JSON documents against expected structures",
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var (
		schemaPath string
		maxDepth   int
		level      string
		showStats  bool
	)
	cmd := &cobra.Command{
		Use:   "validate [input.json]",
		Short: "Validate a JSON document (file or stdin) against a YAML schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			min, err := jsonshape.ParseSeverity(level)
			if err != nil {
				return err
			}
			reg := jsonshape.NewRegistry()
			exp, err := loader.FromYAMLFile(schemaPath, reg)
			if err != nil {
				return err
			}
			var data []byte
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			logger := logrus.New()
			logger.SetOutput(cmd.OutOrStdout())
			logger.SetLevel(logrus.DebugLevel)
			reports := sink.NewLogrusReports(logger, min)
			stats := jsonshape.NewStats()

			eng := jsonshape.NewEngine(jsonshape.Options{MaxDepth: maxDepth})
			res, err := eng.ValidateBytes(data, exp, reports, stats)
			if err != nil {
				return err
			}
			if showStats {
				for _, line := range stats.Lines() {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}
			if !res.OK {
				return errInvalid
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "YAML schema document (required)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum validation recursion depth (0 = default)")
	cmd.Flags().StringVar(&level, "level", "info", "minimum report severity to print (debug|info|warn|error|fatal)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print validation statistics")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
