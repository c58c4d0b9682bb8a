package main

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/verifiedinput/hx"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@2.0.4"></script>`

// dismissScript removes toasts after their data-auto-dismiss delay.
const dismissScript = `<script>
document.body.addEventListener("htmx:afterSettle", function () {
  document.querySelectorAll("[data-auto-dismiss]:not([data-armed])").forEach(function (el) {
    el.dataset.armed = "1";
    setTimeout(function () { el.remove(); }, Number(el.dataset.autoDismiss));
  });
});
</script>`

const pageStyle = `<style>
body{font-family:system-ui,sans-serif;max-width:32rem;margin:2rem auto}
.VerifiedInput-container{margin-bottom:1rem}
.VerifiedInput-label{display:block;margin-bottom:.25rem}
.VerifiedInput-content{display:flex;align-items:center;gap:.25rem}
.VerifiedInput_root{flex:1;padding:.4rem}
.VerifiedInput_root[data-error=true]{border-color:#c0392b}
.VerifiedInput_hiddenArrow::-webkit-inner-spin-button,.VerifiedInput_hiddenArrow::-webkit-outer-spin-button{-webkit-appearance:none;margin:0}
.VerifiedInput_hiddenArrow{-moz-appearance:textfield}
.VerifiedInput_errorMessage{color:#c0392b;font-size:.85rem}
.VerifiedInput_showPasswordEyes{background:none;border:0;cursor:pointer}
.toast-container{position:fixed;top:1rem;right:1rem}
.toast{padding:.5rem 1rem;margin-bottom:.5rem;border-radius:4px;color:#fff}
.toast-success{background:#27ae60}.toast-error{background:#c0392b}
</style>`

// page wraps body in a document that loads htmx.
func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if title == "" {
			title = "Verified input"
		}
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`+
			html.EscapeString(title)+`</title>`+htmxScript+pageStyle+`</head><body>`); err != nil {
			return err
		}
		if err := hx.ToastContainer().Render(ctx, w); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, dismissScript+`</body></html>`)
		return err
	})
}
