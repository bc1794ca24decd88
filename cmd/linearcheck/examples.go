package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/njchilds90/linearcheck"
)

func newExamplesCmd(flags *globalFlags) *cobra.Command {
	var (
		file     string
		parallel int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Verify the example gallery",
		Long: `Verify every example of the gallery and compare the verdict with the
expected label. Without --file the built-in gallery is used. Gallery files
hold a top-level "examples" list and may be TOML, YAML or JSON.

Examples:
  linearcheck examples
  linearcheck examples --file gallery.toml --parallel 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, v, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			examples := linearcheck.Examples()
			if file != "" {
				if examples, err = linearcheck.LoadExamples(file); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("parallel") {
				parallel = cfg.Verifier.Parallelism
			}

			outcomes, err := v.RunExamples(cmd.Context(), examples, parallel)
			if err != nil {
				return err
			}
			failed := 0
			for _, o := range outcomes {
				if !o.Passed {
					failed++
				}
			}
			logger.Debug("gallery complete", "examples", len(outcomes), "failed", failed)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(outcomes); err != nil {
					return err
				}
			} else if err := writeOutcomes(cmd.OutOrStdout(), outcomes); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d examples did not match", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Gallery file (toml, yaml or json)")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "Examples verified concurrently (default verifier.parallelism)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print outcomes as JSON")
	return cmd
}

func writeOutcomes(w io.Writer, outcomes []linearcheck.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tVARIABLES\tTRANSFORMATION\tEXPECTED\tGOT")
	for _, o := range outcomes {
		mark := "✓"
		if !o.Passed {
			mark = "✗"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, o.Example.Name, o.Example.Variables, o.Example.Transformation, o.Example.Expected, o.Got)
	}
	return tw.Flush()
}
