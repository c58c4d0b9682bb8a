package hx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult holds the outcome of rendering a component or invoking one of
// its actions in a test.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	Flashes         []Flash
}

// TestRender runs Hydrate then Render on props directly, without encoding
// or routing. Use TestAction to exercise handlers.
func TestRender[P any](comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction sends an HTMX request to a component and records the
// response. The request carries HX-Request: true; formData is sent
// url-encoded.
//
//	res, _ := hx.TestAction(input, input.URL("change", props), http.MethodPost, map[string]string{"value": "50"})
//	if !res.HasEvent("verifiedinput:change") { ... }
func TestAction(comp HXComponent, actionURL, method string, formData map[string]string) (*TestResult, error) {
	form := url.Values{}
	for k, v := range formData {
		form.Set(k, v)
	}

	req := httptest.NewRequest(method, actionURL, strings.NewReader(form.Encode()))
	if len(formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	comp.HXServeHTTP(rec, req)

	return &TestResult{
		HTML:            rec.Body.String(),
		StatusCode:      rec.Code,
		Headers:         rec.Header(),
		TriggeredEvents: parseTriggerHeader(rec.Header().Get("HX-Trigger")),
		Flashes:         parseFlashesFromHTML(rec.Body.String()),
	}, nil
}

// TestGet simulates a GET request against a component.
func TestGet(comp HXComponent, url string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodGet, nil)
}

// TestPost simulates a POST request against a component.
func TestPost(comp HXComponent, url string, formData map[string]string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodPost, formData)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// EventData returns the detail object sent with event, or nil when the
// event was triggered without data.
func (r *TestResult) EventData(event string) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(r.Headers.Get("HX-Trigger")), &parsed); err != nil {
		return nil
	}
	data, _ := parsed[event].(map[string]any)
	return data
}

// HasFlash checks if a flash message was set with the given level and message.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// parseTriggerHeader returns the event names in an HX-Trigger value, which
// is either a JSON object keyed by event or a comma-separated list.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var parsed map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
			return nil
		}
		events := make([]string, 0, len(parsed))
		for name := range parsed {
			events = append(events, name)
		}
		return events
	}

	var events []string
	for _, p := range strings.Split(trigger, ",") {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

// parseFlashesFromHTML extracts toasts rendered by RenderFlashesOOB.
func parseFlashesFromHTML(html string) []Flash {
	var flashes []Flash

	const prefix = `<div class="toast toast-`
	rest := html
	for {
		_, after, ok := strings.Cut(rest, prefix)
		if !ok {
			break
		}
		level, _, ok := strings.Cut(after, `"`)
		if !ok {
			break
		}
		_, body, ok := strings.Cut(after, ">")
		if !ok {
			break
		}
		message, tail, ok := strings.Cut(body, "</div>")
		if !ok {
			break
		}
		flashes = append(flashes, Flash{Level: level, Message: message})
		rest = tail
	}

	return flashes
}
