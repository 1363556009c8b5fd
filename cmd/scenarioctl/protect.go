package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/scenariokit/comparator"
	"github.com/kbukum/scenariokit/naming"
	"github.com/kbukum/scenariokit/version"
)

func newProtectCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "protect NAME...",
		Short:       "Print the protected form of each name",
		Annotations: map[string]string{skipConfig: "true"},
		Args:        cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				fmt.Fprintln(cmd.OutOrStdout(), naming.Protect(name))
			}
			return nil
		},
	}
}

func newComparatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "comparators",
		Short:       "List the comparators definitions can reference",
		Annotations: map[string]string{skipConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range comparator.DefaultCatalog().List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Annotations: map[string]string{skipConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, version.Get().Full())
			return nil
		},
	}
}
