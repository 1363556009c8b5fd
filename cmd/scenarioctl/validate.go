package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/validation"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that definition documents parse and resolve",
		Example: `  scenarioctl validate scenarios.yaml
  scenarioctl validate -f a.yaml -f b.yaml --pipeline-dir ./pipelines`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.build(args)
			out := cmd.OutOrStdout()
			if err != nil {
				printProblems(cmd, err)
				return err
			}
			fmt.Fprintf(out, "ok: %d pipelines, %d scenarios\n", b.Pipelines().Len(), b.Scenarios().Len())
			return nil
		},
	}
}

// printProblems writes one line per field error, or the error itself.
func printProblems(cmd *cobra.Command, err error) {
	out := cmd.OutOrStdout()
	if appErr, ok := errors.AsAppError(err); ok {
		if fields, ok := appErr.Details["fields"].([]validation.FieldError); ok {
			for _, f := range fields {
				fmt.Fprintf(out, "invalid: %s\n", f)
			}
			return
		}
	}
	fmt.Fprintf(out, "error: %v\n", err)
}
