package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/pipeline"
	"github.com/kbukum/scenariokit/scenario"
)

// scenarioView is the printable form of a scenario configuration.
type scenarioView struct {
	Name        string         `yaml:"name"`
	Revision    string         `yaml:"revision"`
	Pipelines   []string       `yaml:"pipelines"`
	Frequency   string         `yaml:"frequency,omitempty"`
	Comparators map[string]int `yaml:"comparators,omitempty"`
	Properties  map[string]any `yaml:"properties,omitempty"`
}

func viewOf(cfg *scenario.Config) scenarioView {
	v := scenarioView{
		Name:       cfg.Name(),
		Revision:   cfg.Revision().String(),
		Pipelines:  pipeline.Names(cfg.Pipelines()),
		Properties: cfg.Properties(),
	}
	if len(v.Properties) == 0 {
		v.Properties = nil
	}
	if f, ok := cfg.Frequency(); ok {
		v.Frequency = f.String()
	}
	if table, ok := cfg.Comparators(); ok {
		v.Comparators = make(map[string]int, len(table))
		for _, id := range table.EntityIDs() {
			v.Comparators[id] = len(table[id])
		}
	}
	return v
}

func newListCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list [file...]",
		Short: "List the scenarios defined by the documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.build(args)
			if err != nil {
				return err
			}
			views := make([]scenarioView, 0, b.Scenarios().Len())
			for _, cfg := range b.Scenarios().All() {
				views = append(views, viewOf(cfg))
			}

			switch output {
			case "table":
				return writeTable(cmd.OutOrStdout(), views)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(views); err != nil {
					return errors.Internal(err)
				}
				return enc.Close()
			default:
				return errors.InvalidInput("output", fmt.Sprintf("unknown format %q", output))
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or yaml")
	return cmd
}

func writeTable(w io.Writer, views []scenarioView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFREQUENCY\tPIPELINES\tCOMPARATORS")
	for _, v := range views {
		freq := v.Frequency
		if freq == "" {
			freq = "-"
		}
		comparators := "-"
		if v.Comparators != nil {
			comparators = fmt.Sprint(len(v.Comparators))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, freq, strings.Join(v.Pipelines, ","), comparators)
	}
	return tw.Flush()
}
