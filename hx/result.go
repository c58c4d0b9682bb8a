package hx

// Result[P] is returned from action handlers to control rendering and side
// effects. The framework applies it after the handler returns: headers,
// then the render of the returned props, then any flashes.
//
//	// Admitted edit, rerender and tell listeners
//	return hx.OK(props).Trigger(EventChange, map[string]any{"name": props.Name, "value": props.Value})
//
//	// Form rejected
//	return hx.OK(props).Flash(hx.FlashError, "Fix the highlighted fields").Status(http.StatusUnprocessableEntity)
//
//	// Domain failure, routed to the registry's error handler
//	return hx.Err(props, err)
type Result[P any] struct {
	props       P
	err         error
	flashes     []Flash
	trigger     string
	triggerData map[string]any
	headers     map[string]string
	status      int
}

// OK creates a success result that renders the given props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err creates a result that is passed to the error handler instead of
// rendering.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Flash adds a toast notification, rendered as an out-of-band swap into
// #toasts. Flashes can be chained.
func (r Result[P]) Flash(level, message string) Result[P] {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger emits an event via the HX-Trigger header. With data the header
// is a JSON object and HTMX exposes the data as evt.detail.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// Header sets a custom response header.
func (r Result[P]) Header(key, value string) Result[P] {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

// Status sets the HTTP status code. Zero means 200.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

// GetProps returns the props from the result.
func (r Result[P]) GetProps() P {
	return r.props
}

// GetErr returns the error from the result.
func (r Result[P]) GetErr() error {
	return r.err
}

// GetFlashes returns the flash messages.
func (r Result[P]) GetFlashes() []Flash {
	return r.flashes
}

// GetTrigger returns the trigger event name.
func (r Result[P]) GetTrigger() string {
	return r.trigger
}

// GetTriggerData returns the trigger event data.
func (r Result[P]) GetTriggerData() map[string]any {
	return r.triggerData
}

// GetHeaders returns the response headers.
func (r Result[P]) GetHeaders() map[string]string {
	return r.headers
}

// GetStatus returns the HTTP status code (0 means not set).
func (r Result[P]) GetStatus() int {
	return r.status
}
