package ratelimit

import (
	"net/http"
	"strings"
	"testing"
)

func TestBuildQuery_DropsNilValues(t *testing.T) {
	present := "bar"
	qs := buildQuery([]QueryParam{
		{Name: "foo", Value: &present},
		{Name: "omit", Value: nil},
	})
	if qs != "foo=bar" {
		t.Fatalf("expected foo=bar, got %q", qs)
	}
}

func TestAssemble_HeaderMergeOrder(t *testing.T) {
	m := testManager(t, &fakeDoer{}, newFakeClock())

	prep, err := m.assemble(Request{
		Method:   "POST",
		Endpoint: "/channels/1/messages",
		Headers:  http.Header{"User-Agent": {"custom-agent-should-be-overwritten"}},
		Data:     map[string]string{"content": "hi"},
		Reason:   "because",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prep.Header.Get("User-Agent") == "custom-agent-should-be-overwritten" {
		t.Fatalf("mandatory User-Agent must overwrite a caller-supplied one")
	}
	if prep.Header.Get("Authorization") != "Bot test-token" {
		t.Fatalf("expected bot auth header, got %q", prep.Header.Get("Authorization"))
	}
	if prep.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("expected json content type, got %q", prep.Header.Get("Content-Type"))
	}
	if prep.Header.Get("X-Audit-Log-Reason") == "" {
		t.Fatalf("expected audit log reason header to be set")
	}
	if !strings.Contains(prep.URL, "/channels/1/messages") {
		t.Fatalf("unexpected URL: %s", prep.URL)
	}
}

func TestAssemble_NoAuthSkipsToken(t *testing.T) {
	m := testManager(t, &fakeDoer{}, newFakeClock())
	m.SetToken("")

	noAuth := false
	prep, err := m.assemble(Request{
		Method:   "POST",
		Endpoint: "/webhooks/1/tok",
		Auth:     &noAuth,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prep.Header.Get("Authorization") != "" {
		t.Fatalf("expected no Authorization header, got %q", prep.Header.Get("Authorization"))
	}
}

func TestAssemble_MultipartContentType(t *testing.T) {
	m := testManager(t, &fakeDoer{}, newFakeClock())

	prep, err := m.assemble(Request{
		Method:   "POST",
		Endpoint: "/channels/1/messages",
		Data:     map[string]string{"content": "hi"},
		Files:    []RequestFile{{Name: "a.txt", Content: []byte("hello")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(prep.Header.Get("Content-Type"), "multipart/form-data") {
		t.Fatalf("expected multipart content type, got %q", prep.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(prep.Body), "payload_json") {
		t.Fatalf("expected payload_json field in multipart body")
	}
}
