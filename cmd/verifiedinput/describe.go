package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pthm/verifiedinput"
	"github.com/pthm/verifiedinput/internal/config"
)

func newDescribeCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe the form and its fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			md, err := a.describe()
			if err != nil {
				return err
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			rendered, err := glamour.Render(md, "dark")
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	return cmd
}

// describe renders the form description followed by a table of fields.
func (a *app) describe() (string, error) {
	var sb strings.Builder

	title := a.cfg.Form.Title
	if title == "" {
		title = "Form"
	}
	sb.WriteString("# " + title + "\n\n")
	if d := strings.TrimSpace(a.cfg.Form.Description); d != "" {
		sb.WriteString(d + "\n\n")
	}

	sb.WriteString("| Field | Type | Accepts | Validation |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, f := range a.cfg.Form.Fields {
		opts, err := f.Options(a.preds)
		if err != nil {
			return "", fmt.Errorf("field %q: %w", f.Name, err)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			cell(fieldTitle(f)), opts.Mode, cell(accepts(opts)), cell(validation(f)))
	}
	return sb.String(), nil
}

func fieldTitle(f config.Field) string {
	if f.Label != "" && f.Label != f.Name {
		return f.Label + " (`" + f.Name + "`)"
	}
	return "`" + f.Name + "`"
}

// accepts summarises what the admission filter lets through.
func accepts(o verifiedinput.Options) string {
	var parts []string
	switch o.Mode {
	case verifiedinput.ModeNumber:
		if o.IntegerOnly {
			parts = append(parts, "integers")
		} else {
			parts = append(parts, "numbers")
		}
		if o.Bounds.MinEnabled {
			parts = append(parts, "≥ "+verifiedinput.FormatNumber(o.Bounds.Min))
		}
		if o.Bounds.HasMax {
			parts = append(parts, "≤ "+verifiedinput.FormatNumber(o.Bounds.Max))
		}
		if o.AllowLeadingZero {
			parts = append(parts, "leading zeros kept")
		}
	case verifiedinput.ModePassword:
		parts = append(parts, "any text, masked")
		if o.AllowReveal {
			parts = append(parts, "can be revealed")
		}
	default:
		parts = append(parts, "any text")
	}
	return strings.Join(parts, ", ")
}

func validation(f config.Field) string {
	if !f.EnableValidation {
		return "off"
	}
	name := f.Predicate
	if name == "" {
		name = "always"
	}
	if len(f.PredicateArgs) > 0 {
		name += "(" + strings.Join(f.PredicateArgs, ", ") + ")"
	}
	if f.ErrorMessage != "" {
		name += `: "` + f.ErrorMessage + `"`
	}
	return name
}

// cell escapes pipes so text stays inside its table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
