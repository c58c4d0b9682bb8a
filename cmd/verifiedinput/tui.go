package main

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pthm/verifiedinput/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Fill in the form in the terminal",
		Long:  `Runs the form as a terminal UI. Accepted values are printed as name=value lines.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := a.newTUIForm()
			if err != nil {
				return err
			}

			p := tea.NewProgram(form,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run form: %w", err)
			}

			if !form.Accepted() {
				a.logger.Info("form cancelled")
				return nil
			}
			printValues(cmd, form.Values())
			return nil
		},
	}
}

// newTUIForm builds a terminal field for each configured field.
func (a *app) newTUIForm() (*tui.Form, error) {
	fields := make([]*tui.Field, 0, len(a.cfg.Form.Fields))
	for _, f := range a.cfg.Form.Fields {
		opts, err := f.Options(a.preds)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		field := tui.NewField(f.Name, f.Label, f.Value, opts)
		field.SetPlaceholder(f.Placeholder)
		field.ErrorMessage = f.ErrorMessage
		fields = append(fields, field)
	}
	return tui.NewForm(a.cfg.Form.Title, fields...), nil
}

func printValues(cmd *cobra.Command, values map[string]string) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, values[name])
	}
}
