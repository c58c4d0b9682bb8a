// Package tui renders verified inputs in the terminal with bubbletea.
package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm/verifiedinput"
)

// ChangedMsg is emitted after an admitted edit.
type ChangedMsg struct {
	Name  string
	Value string
}

// Field is a single verified input. Every keystroke goes through the
// admission filter; a rejected edit leaves the text as it was.
//
// The text on screen can run ahead of the stored value. A number field
// shows "2." while it stores "2", and holds a lone "-" or "." without
// storing anything until a digit follows. Blur puts the stored value back
// on screen.
type Field struct {
	Name         string
	Label        string
	ErrorMessage string

	input  textinput.Model
	field  *verifiedinput.Field
	text   string
	styles Styles
}

// NewField creates a field showing value.
func NewField(name, label string, value any, opts verifiedinput.Options) *Field {
	f := &Field{
		Name:   name,
		Label:  label,
		field:  verifiedinput.NewField(value, opts, nil),
		styles: DefaultStyles(),
	}

	f.input = textinput.New()
	f.input.Prompt = "> "
	f.input.CharLimit = 256
	f.input.Width = 40
	f.input.SetValue(f.field.Value())
	f.text = f.field.Value()
	f.syncEcho()
	return f
}

// SetStyles replaces the field's styles.
func (f *Field) SetStyles(s Styles) {
	f.styles = s
}

// SetPlaceholder sets the text shown while the field is empty.
func (f *Field) SetPlaceholder(p string) {
	f.input.Placeholder = p
}

// Focus gives the field the cursor.
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur takes the cursor away and marks the field touched. Text still in
// progress is replaced by the stored value.
func (f *Field) Blur() {
	f.input.Blur()
	f.field.Blur()
	if f.text != f.field.Value() {
		f.text = f.field.Value()
		f.input.SetValue(f.text)
	}
}

// Focused reports whether the field has the cursor.
func (f *Field) Focused() bool {
	return f.input.Focused()
}

// SetSubmitAttempted records the owner's submit attempt.
func (f *Field) SetSubmitAttempted(v bool) {
	f.field.SetSubmitAttempted(v)
}

// Value returns the stored value.
func (f *Field) Value() string {
	return f.field.Value()
}

// IsError reports whether the error indicator is shown.
func (f *Field) IsError() bool {
	return f.field.IsError()
}

// Valid reports whether the value passes validation, regardless of
// whether the error would be shown yet.
func (f *Field) Valid() bool {
	s := f.field.State()
	s.Submitted = true
	return !verifiedinput.Restore(s, f.field.Options(), nil).IsError()
}

// InputType returns the rendering mode.
func (f *Field) InputType() verifiedinput.InputType {
	return f.field.InputType()
}

func (f *Field) syncEcho() {
	if f.field.InputType() == verifiedinput.InputPassword {
		f.input.EchoMode = textinput.EchoPassword
		f.input.EchoCharacter = '•'
	} else {
		f.input.EchoMode = textinput.EchoNormal
	}
}

// Init implements tea.Model.
func (f *Field) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (f *Field) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !f.input.Focused() {
		return f, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+r":
			f.field.ToggleReveal()
			f.syncEcho()
			return f, nil
		}
		if key.Type == tea.KeyRunes {
			for _, r := range key.Runes {
				if !f.field.KeyDown(string(r)) {
					return f, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	proposed := f.input.Value()
	if proposed == f.text {
		return f, cmd
	}
	if f.partial(proposed) {
		f.text = proposed
		return f, cmd
	}

	d := f.field.Change(proposed)
	if !d.Admitted {
		pos := f.input.Position() - (utf8.RuneCountInString(proposed) - utf8.RuneCountInString(f.text))
		f.input.SetValue(f.text)
		f.input.SetCursor(pos)
		return f, cmd
	}
	f.text = proposed

	name, value := f.Name, f.field.Value()
	return f, tea.Batch(cmd, func() tea.Msg {
		return ChangedMsg{Name: name, Value: value}
	})
}

// partial reports whether s is the start of a numeral that a later
// keystroke could complete into an admissible value.
func (f *Field) partial(s string) bool {
	opts := f.field.Options()
	if opts.Mode != verifiedinput.ModeNumber {
		return false
	}
	negative := !opts.Bounds.MinEnabled || opts.Bounds.Min < 0
	switch s {
	case "-":
		return negative
	case ".":
		return !opts.IntegerOnly
	case "-.":
		return negative && !opts.IntegerOnly
	}
	return false
}

// View implements tea.Model.
func (f *Field) View() string {
	var b strings.Builder

	if f.Label != "" {
		label := f.styles.Label
		if f.input.Focused() {
			label = f.styles.FocusedLabel
		}
		b.WriteString(label.Render(f.Label))
		b.WriteString("\n")
	}

	input := f.styles.Input
	if f.field.IsError() {
		input = f.styles.ErrorInput
	}
	b.WriteString(input.Render(f.input.View()))

	opts := f.field.Options()
	if opts.Mode == verifiedinput.ModePassword && opts.AllowReveal {
		hint := "ctrl+r show"
		if f.field.Revealed() {
			hint = "ctrl+r hide"
		}
		b.WriteString(" ")
		b.WriteString(f.styles.Hint.Render(hint))
	}

	if f.field.IsError() && f.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(f.styles.Error.Render(f.ErrorMessage))
	}
	return b.String()
}
