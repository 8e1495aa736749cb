package events

import (
	"errors"
	"testing"

	"github.com/purgehub/purgehub/internal/purge"
)

func TestWordPressAdapterDecodesTransition(t *testing.T) {
	adapter, ok := Fetch("WordPress")
	if !ok {
		t.Fatalf("wordpress adapter should be registered")
	}

	body := []byte(`{
		"new_status": "publish",
		"old_status": "publish",
		"post": {"ID": 42, "post_type": "page", "post_title": "About"},
		"permalink": " https://example.com/about/ "
	}`)
	tr, err := adapter.Decode(body)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if tr.OldStatus != purge.StatusPublish || tr.NewStatus != purge.StatusPublish {
		t.Fatalf("unexpected statuses: %+v", tr)
	}
	if tr.ContentType != "page" || tr.URL != "https://example.com/about/" {
		t.Fatalf("unexpected transition: %+v", tr)
	}

	req, ok := purge.Resolve(tr)
	if !ok || req.Scope != purge.ScopeSingle {
		t.Fatalf("republished page should resolve to single purge, got %+v ok=%v", req, ok)
	}
}

func TestGenericAdapterDecodesTransition(t *testing.T) {
	adapter, ok := Fetch(SourceGeneric)
	if !ok {
		t.Fatalf("generic adapter should be registered")
	}
	tr, err := adapter.Decode([]byte(`{"old_status":"draft","new_status":"publish","content_type":"post","url":"https://example.com/hello/"}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	req, ok := purge.Resolve(tr)
	if !ok || req.Scope != purge.ScopeFull {
		t.Fatalf("first publish should resolve to full purge, got %+v ok=%v", req, ok)
	}
}

func TestAdaptersRejectInvalidPayload(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		body   string
	}{
		{"malformed json", SourceGeneric, `{"old_status":`},
		{"missing new status", SourceGeneric, `{"old_status":"draft","content_type":"post"}`},
		{"missing post type", SourceWordPress, `{"old_status":"draft","new_status":"publish","post":{}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			adapter, _ := Fetch(tc.source)
			if _, err := adapter.Decode([]byte(tc.body)); !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestUnknownContentTypeIsNotAnError(t *testing.T) {
	adapter, _ := Fetch(SourceWordPress)
	tr, err := adapter.Decode([]byte(`{"old_status":"inherit","new_status":"inherit","post":{"post_type":"attachment"}}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if _, ok := purge.Resolve(tr); ok {
		t.Fatalf("attachment should not trigger a purge")
	}
}
