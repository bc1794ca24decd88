package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/njchilds90/linearcheck"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var (
		format         string
		variables      string
		transformation string
	)
	cmd := &cobra.Command{
		Use:   "check [variables] [transformation]",
		Short: "Check whether a transformation is linear",
		Long: `Check whether a transformation is linear in the given variables.

The variables are comma-separated names. The transformation is a single
expression or a parenthesized tuple of component expressions.

Examples:
  linearcheck check "x,y" "(2*x, 3*y)"
  linearcheck check --variables x,y,z --transformation "(x**2, y, z+1)"
  linearcheck check "x,y" "(x + y, x - y)" --format=latex --locale=en`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && cmd.Flags().Changed("variables") {
				return errors.New("variables given both as argument and flag")
			}
			if len(args) > 1 && cmd.Flags().Changed("transformation") {
				return errors.New("transformation given both as argument and flag")
			}
			if len(args) > 0 {
				variables = args[0]
			}
			if len(args) > 1 {
				transformation = args[1]
			}

			f, err := linearcheck.ParseFormat(format)
			if err != nil {
				return err
			}
			_, _, v, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			res := v.VerifyContext(cmd.Context(), variables, transformation)
			if err := v.WriteReport(cmd.OutOrStdout(), res, f); err != nil {
				return err
			}
			if !res.OK() {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml, latex)")
	cmd.Flags().StringVar(&variables, "variables", "", "Comma-separated variable names")
	cmd.Flags().StringVar(&transformation, "transformation", "", "Transformation, e.g. \"(2*x, 3*y)\"")
	return cmd
}
