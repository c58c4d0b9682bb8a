package hx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	if IsHTMX(r) {
		t.Error("IsHTMX() = true without header")
	}

	r.Header.Set("HX-Request", "false")
	if IsHTMX(r) {
		t.Error("IsHTMX() = true for HX-Request: false")
	}

	r.Header.Set("HX-Request", "true")
	if !IsHTMX(r) {
		t.Error("IsHTMX() = false")
	}
}

func TestBuildTriggerHeader(t *testing.T) {
	if got := BuildTriggerHeader("", map[string]any{"a": 1}); got != "" {
		t.Errorf("empty trigger = %q", got)
	}
	if got := BuildTriggerHeader("verifiedinput:submitted", nil); got != "verifiedinput:submitted" {
		t.Errorf("plain trigger = %q", got)
	}

	got := BuildTriggerHeader("verifiedinput:change", map[string]any{"name": "age", "value": "42"})
	var parsed map[string]map[string]string
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("header %q is not JSON: %v", got, err)
	}
	if parsed["verifiedinput:change"]["value"] != "42" {
		t.Errorf("parsed = %v", parsed)
	}
}

func TestWireAttrs(t *testing.T) {
	get := WireAttrs("/_c/x/", http.MethodGet, "abc")
	if get["hx-get"] != "/_c/x/?p=abc" {
		t.Errorf("GET attrs = %v", get)
	}

	post := WireAttrs("/_c/x/change", http.MethodPost, "abc")
	if post["hx-post"] != "/_c/x/change" {
		t.Errorf("POST attrs = %v", post)
	}
	if post["hx-vals"] != `{"p":"abc"}` {
		t.Errorf("hx-vals = %v", post["hx-vals"])
	}

	bare := WireAttrs("/_c/x/blur", http.MethodPost, "")
	if _, ok := bare["hx-vals"]; ok {
		t.Errorf("unexpected hx-vals without props: %v", bare)
	}
}
