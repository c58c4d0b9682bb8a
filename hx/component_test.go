package hx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

var errTooLarge = errors.New("count too large")

// counter is a minimal component used to exercise dispatch.
type counter struct {
	*Component[mockProps]
	hydrateErr error
}

func newCounter() *counter {
	c := &counter{Component: New[mockProps]("counter")}
	c.Action("increment", func(ctx context.Context, props mockProps, r *http.Request) Result[mockProps] {
		props.Count++
		if props.Count > 3 {
			return Err(props, errTooLarge)
		}
		return OK(props).
			Trigger("counted", map[string]any{"count": props.Count}).
			Header("Cache-Control", "no-store")
	})
	c.Action("created", func(ctx context.Context, props mockProps, r *http.Request) Result[mockProps] {
		return OK(props).Status(http.StatusCreated).Flash(FlashSuccess, "made")
	})
	c.Action("peek", func(ctx context.Context, props mockProps, r *http.Request) Result[mockProps] {
		return OK(props)
	}).Method(http.MethodGet)
	return c
}

func (c *counter) Hydrate(ctx context.Context, props *mockProps) error {
	return c.hydrateErr
}

func (c *counter) Render(ctx context.Context, props mockProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<b>`+props.Name+`=`+strconv.Itoa(props.Count)+`</b>`)
		return err
	})
}

func (c *counter) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Serve(w, r, c)
}

func registered(t *testing.T) (*Registry, *counter) {
	t.Helper()
	reg := NewRegistry([]byte("test-key"))
	c := newCounter()
	reg.Add(c)
	return reg, c
}

func postTo(c HXComponent, url string) *TestResult {
	res, _ := TestPost(c, url, nil)
	return res
}

func TestComponentPrefixIsStable(t *testing.T) {
	a := New[mockProps]("same")
	b := New[mockProps]("same")
	if !strings.HasPrefix(a.Prefix(), "/_c/same-") {
		t.Errorf("Prefix() = %q", a.Prefix())
	}
	if a.Prefix() == b.Prefix() {
		t.Error("components created on different lines share a prefix")
	}
}

func TestComponentRender(t *testing.T) {
	_, c := registered(t)
	res, _ := TestGet(c, c.URL("", mockProps{Name: "n", Count: 2}))
	if !res.IsOK() || res.HTML != "<b>n=2</b>" {
		t.Errorf("render = %d %q", res.StatusCode, res.HTML)
	}
}

func TestComponentAction(t *testing.T) {
	_, c := registered(t)
	res := postTo(c, c.URL("increment", mockProps{Name: "n", Count: 1}))

	if res.HTML != "<b>n=2</b>" {
		t.Errorf("HTML = %q", res.HTML)
	}
	if res.EventData("counted")["count"] != float64(2) {
		t.Errorf("HX-Trigger = %q", res.Headers.Get("HX-Trigger"))
	}
	if res.Headers.Get("Cache-Control") != "no-store" {
		t.Errorf("headers = %v", res.Headers)
	}
}

func TestComponentStatusAndFlash(t *testing.T) {
	_, c := registered(t)
	res := postTo(c, c.URL("created", mockProps{Name: "n"}))
	if !res.HasStatus(http.StatusCreated) {
		t.Errorf("StatusCode = %d", res.StatusCode)
	}
	if !res.HasFlash(FlashSuccess, "made") {
		t.Errorf("Flashes = %+v", res.Flashes)
	}
}

func TestComponentWire(t *testing.T) {
	_, c := registered(t)
	post := c.Wire("increment", mockProps{})
	if post["hx-post"] != c.Prefix()+"/increment" || post["hx-vals"] == nil {
		t.Errorf("Wire(increment) = %v", post)
	}
	get := c.Wire("peek", mockProps{})
	if !strings.HasPrefix(get["hx-get"].(string), c.Prefix()+"/peek?p=") {
		t.Errorf("Wire(peek) = %v", get)
	}
}

func TestComponentErrors(t *testing.T) {
	_, c := registered(t)
	props := mockProps{Name: "n", Count: 1}

	tests := []struct {
		name   string
		method string
		url    string
		want   int
	}{
		{"unknown action", http.MethodPost, c.Prefix() + "/nope", http.StatusNotFound},
		{"wrong method", http.MethodPost, c.URL("peek", props), http.StatusNotFound},
		{"post to render", http.MethodPost, c.URL("", props), http.StatusNotFound},
		{"tampered props", http.MethodGet, c.Prefix() + "/?p=AAAA.AAAA", http.StatusBadRequest},
		{"handler error", http.MethodPost, c.URL("increment", mockProps{Count: 3}), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := TestAction(c, tt.url, tt.method, nil)
			if res.StatusCode != tt.want {
				t.Errorf("StatusCode = %d, want %d", res.StatusCode, tt.want)
			}
		})
	}
}

func TestComponentHydrationFailure(t *testing.T) {
	_, c := registered(t)
	c.hydrateErr = errors.New("no such predicate")

	var got error
	c.SetOnError(func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	res, _ := TestGet(c, c.URL("", mockProps{}))
	if !errors.Is(got, ErrHydrationFailed) {
		t.Errorf("error = %v, want ErrHydrationFailed", got)
	}
	if !res.HasStatus(http.StatusUnprocessableEntity) {
		t.Errorf("StatusCode = %d", res.StatusCode)
	}
}

func TestComponentUnregistered(t *testing.T) {
	c := newCounter()
	if c.URL("increment", mockProps{}) != c.Prefix()+"/increment" {
		t.Errorf("URL() without encoder = %q", c.URL("increment", mockProps{}))
	}
	res, _ := TestGet(c, c.Prefix()+"/?p=abc")
	if !res.HasStatus(http.StatusBadRequest) {
		t.Errorf("StatusCode = %d", res.StatusCode)
	}
}

func TestRegistryCSRF(t *testing.T) {
	reg, c := registered(t)
	h := reg.Handler()

	req := httptest.NewRequest(http.MethodPost, c.URL("increment", mockProps{}), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("POST without HX-Request = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, c.URL("increment", mockProps{}), nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("POST with HX-Request = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, c.URL("", mockProps{}), nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET = %d, want 200", rec.Code)
	}
}

func TestRegistryInjects(t *testing.T) {
	reg := NewRegistry([]byte("k"))
	var called bool
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) { called = true }

	c := newCounter()
	reg.Add(c)

	if c.Encoder() != reg.Encoder() {
		t.Error("encoder not injected")
	}
	c.OnError()(httptest.NewRecorder(), nil, ErrNotFound)
	if !called {
		t.Error("OnError not injected")
	}
}

func TestRegistryPrefixCollision(t *testing.T) {
	reg := NewRegistry([]byte("k"))
	m := &mockHXComponent{prefix: "/_c/x"}
	reg.Add(m)

	defer func() {
		if recover() == nil {
			t.Error("Add() of a duplicate prefix did not panic")
		}
	}()
	reg.Add(&mockHXComponent{prefix: "/_c/x"})
}
