// Package hx serves verified inputs as server-rendered HTMX components.
//
// Components embed *Component[P] where P is a msgpack-serializable props
// type. Props travel with every request, either signed (readable but
// tamper-proof) or encrypted when the component is marked Sensitive, so the
// server holds no per-field session state.
//
//	type Input struct {
//	    *hx.Component[InputProps]
//	}
//
// The lifecycle is two interfaces:
//   - Hydrater[P]: Hydrate(ctx, *P) restores what cannot travel, such as
//     the validation predicate, which is sent by name
//   - Renderer[P]: Render(ctx, P) produces the templ.Component output
//
// # Actions
//
// Actions are registered by name and POST by default:
//
//	c.Action("change", c.handleChange)
//	c.Action("preview", c.handlePreview).Method(http.MethodGet)
//
// A handler returns a Result: OK renders the updated props, Err hands the
// error to the registry's error handler, and Trigger/Flash add HX-Trigger
// events and toast notifications.
//
// # Verified inputs
//
// Input runs every edit through the admission filter of package
// verifiedinput. An admitted edit re-renders with the stored value and
// triggers EventChange; a rejected one re-renders the previous value.
// Errors appear only after the field is blurred or EventSubmitted fires.
//
//	reg := hx.NewRegistry(key)
//	input := hx.NewInput(nil)
//	reg.Add(input, hx.NewForm(input))
//	http.Handle("/_c/", reg.Handler())
//
// # Security
//
// Mutating methods require the HX-Request: true header that HTMX sends,
// which a cross-site form cannot set.
package hx
