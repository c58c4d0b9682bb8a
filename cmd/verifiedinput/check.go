package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pthm/verifiedinput"
)

var errUnknownField = errors.New("unknown field")

// checkStep is one edit and what the field made of it.
type checkStep struct {
	Edit     string               `json:"edit"`
	Admitted bool                 `json:"admitted"`
	Value    string               `json:"value"`
	Reason   verifiedinput.Reason `json:"reason,omitempty"`
}

// checkReport is the outcome of a check run.
type checkReport struct {
	Field string      `json:"field"`
	Steps []checkStep `json:"steps"`
	Value string      `json:"value"`
	Error bool        `json:"error"`
}

func newCheckCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <field> [edit...]",
		Short: "Run edits through a field's filter",
		Long: `Proposes each edit in turn to the named field, starting from its configured
value, and prints whether it was admitted and what was stored. The last line
reports whether the field would show its error after a submit attempt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.check(args[0], args[1:])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printReport(cmd, report)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func (a *app) check(name string, edits []string) (checkReport, error) {
	f, ok := a.cfg.Field(name)
	if !ok {
		return checkReport{}, fmt.Errorf("%w: %q", errUnknownField, name)
	}
	opts, err := f.Options(a.preds)
	if err != nil {
		return checkReport{}, fmt.Errorf("field %q: %w", name, err)
	}

	field := verifiedinput.NewField(f.Value, opts, nil)
	field.SetLogger(a.logger)

	report := checkReport{Field: name, Steps: make([]checkStep, 0, len(edits))}
	for _, edit := range edits {
		d := field.Change(edit)
		report.Steps = append(report.Steps, checkStep{
			Edit:     edit,
			Admitted: d.Admitted,
			Value:    field.Value(),
			Reason:   d.Reason,
		})
	}

	field.SetSubmitAttempted(true)
	report.Value = field.Value()
	report.Error = field.IsError()
	return report, nil
}

func printReport(cmd *cobra.Command, r checkReport) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, s := range r.Steps {
		if s.Admitted {
			fmt.Fprintf(tw, "admit\t%q\t-> %q\n", s.Edit, s.Value)
		} else {
			fmt.Fprintf(tw, "reject\t%q\t%s\n", s.Edit, s.Reason)
		}
	}
	fmt.Fprintf(tw, "value\t%q\terror=%t\n", r.Value, r.Error)
	return tw.Flush()
}
