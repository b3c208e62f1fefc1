package webapp

import (
	"net/http/httptest"
	"testing"
)

func TestPublishAndCapture(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req, capture := WithCapture(req)

	globals := map[string]any{"project": "demo"}
	PublishGlobals(req, globals)

	got, ok := capture.Object().(map[string]any)
	if !ok {
		t.Fatalf("captured %T, want map", capture.Object())
	}
	if got["project"] != "demo" {
		t.Fatalf("captured %#v", got)
	}
	if g := GlobalsFrom(req); g == nil {
		t.Fatal("GlobalsFrom returned nil after publish")
	}
}

func TestPublishWithoutCaptureIsNoOp(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	PublishGlobals(req, "ignored")
	if g := GlobalsFrom(req); g != nil {
		t.Fatalf("GlobalsFrom = %v, want nil", g)
	}
}

func TestCaptureLastWriteWins(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req, capture := WithCapture(req)
	PublishGlobals(req, "first")
	PublishGlobals(req, "second")
	if got := capture.Object(); got != "second" {
		t.Fatalf("Object = %v, want second", got)
	}
}
