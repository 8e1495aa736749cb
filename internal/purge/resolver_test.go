package purge

import "testing"

func TestResolveDecisionTable(t *testing.T) {
	const url = "https://example.com/blog/hello-world/"
	testCases := []struct {
		name      string
		old       Status
		new       Status
		kind      string
		wantOK    bool
		wantScope Scope
	}{
		{"attachment ignored", StatusPublish, StatusPublish, "attachment", false, ""},
		{"custom type ignored", StatusDraft, StatusPublish, "product", false, ""},
		{"republish post", StatusPublish, StatusPublish, "post", true, ScopeSingle},
		{"republish page", StatusPublish, StatusPublish, "page", true, ScopeSingle},
		{"first publish", StatusDraft, StatusPublish, "post", true, ScopeFull},
		{"future to publish", "future", StatusPublish, "page", true, ScopeFull},
		{"unpublish", StatusPublish, StatusDraft, "post", false, ""},
		{"trash", StatusPublish, "trash", "post", false, ""},
		{"draft save", StatusDraft, StatusDraft, "post", false, ""},
		{"case and whitespace", " Publish ", "PUBLISH", " Post", true, ScopeSingle},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, ok := Resolve(Transition{
				OldStatus:   tc.old,
				NewStatus:   tc.new,
				ContentType: tc.kind,
				URL:         url,
			})
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if !ok {
				return
			}
			if req.Scope != tc.wantScope {
				t.Fatalf("expected scope %s, got %s", tc.wantScope, req.Scope)
			}
			if req.Scope == ScopeSingle && req.URL != url {
				t.Fatalf("single purge should carry the content url, got %q", req.URL)
			}
			if req.Scope == ScopeFull && req.URL != "" {
				t.Fatalf("full purge should not carry a url, got %q", req.URL)
			}
		})
	}
}

func TestManualIsAlwaysFull(t *testing.T) {
	if req := Manual(); req.Scope != ScopeFull {
		t.Fatalf("manual purge should be full, got %s", req.Scope)
	}
}
