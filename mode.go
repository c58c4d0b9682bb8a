package verifiedinput

// InputType is the concrete type the underlying control renders as.
type InputType string

const (
	InputText     InputType = "text"
	InputNumber   InputType = "number"
	InputPassword InputType = "password"
)

// ResolveInputType maps a field mode to the control type. A password field
// renders as plain text only while revealed, and only when reveal is
// allowed at all.
func ResolveInputType(mode Mode, allowReveal, revealed bool) InputType {
	switch mode {
	case ModeNumber:
		return InputNumber
	case ModePassword:
		if allowReveal && revealed {
			return InputText
		}
		return InputPassword
	}
	return InputText
}
