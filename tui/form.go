package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SubmittedMsg is emitted when a submit attempt finds every field valid.
type SubmittedMsg struct {
	Values map[string]string
}

// Form is a vertical list of fields. Tab and shift+tab move focus, which
// blurs the field being left; enter is a submit attempt.
type Form struct {
	Title  string
	fields []*Field
	focus  int
	styles Styles

	submitted bool
	accepted  bool
	cancelled bool
	invalid   []string
}

// NewForm creates a form over fields, focusing the first.
func NewForm(title string, fields ...*Field) *Form {
	f := &Form{Title: title, fields: fields, styles: DefaultStyles()}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return f
}

// Fields returns the form's fields.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Accepted reports whether the form was submitted with every field valid.
func (f *Form) Accepted() bool {
	return f.accepted
}

// Cancelled reports whether the user quit without submitting.
func (f *Form) Cancelled() bool {
	return f.cancelled
}

// Values returns the stored value of every field by name.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.Name] = field.Value()
	}
	return values
}

// Submit marks a submit attempt on every field and returns the names of
// the invalid ones.
func (f *Form) Submit() []string {
	f.submitted = true
	var invalid []string
	for _, field := range f.fields {
		field.SetSubmitAttempted(true)
		if !field.Valid() {
			invalid = append(invalid, field.Name)
		}
	}
	f.invalid = invalid
	f.accepted = len(invalid) == 0
	return invalid
}

func (f *Form) move(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].Focus()
}

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			f.cancelled = true
			return f, tea.Quit
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		case "enter":
			if len(f.Submit()) == 0 {
				values := f.Values()
				return f, tea.Sequence(func() tea.Msg { return SubmittedMsg{Values: values} }, tea.Quit)
			}
			return f, nil
		}
	}

	if len(f.fields) == 0 {
		return f, nil
	}
	_, cmd := f.fields[f.focus].Update(msg)
	return f, cmd
}

// View implements tea.Model.
func (f *Form) View() string {
	var b strings.Builder
	if f.Title != "" {
		b.WriteString(f.styles.Title.Render(f.Title))
		b.WriteString("\n")
	}
	for _, field := range f.fields {
		b.WriteString(field.View())
		b.WriteString("\n\n")
	}

	switch {
	case f.accepted:
		b.WriteString(f.styles.Success.Render("Form accepted"))
	case f.submitted && len(f.invalid) > 0:
		b.WriteString(f.styles.Error.Render(strings.Join(f.invalid, ", ") + " need attention"))
	default:
		b.WriteString(f.styles.Hint.Render("tab next • enter submit • esc quit"))
	}
	b.WriteString("\n")
	return b.String()
}
