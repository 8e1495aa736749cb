package cache

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestArtifactKeyMatchesNginxKey(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		key  string
	}{
		{"root", "https://example.com/", "0c6d84446df30d38c2c682134d5ee937"},
		{"root without path", "https://example.com", "0c6d84446df30d38c2c682134d5ee937"},
		{"missing trailing slash", "http://example.com/blog/hello-world", "7147d7e942f4ff5b1527ca3679f022c7"},
		{"query dropped", "https://example.com/about?preview=true", "b0e34ddf3467697a5679c9e8b4c5430d"},
		{"port and case dropped", "https://EXAMPLE.com:443/about/", "b0e34ddf3467697a5679c9e8b4c5430d"},
		{"fragment dropped", "https://example.com/about/#team", "b0e34ddf3467697a5679c9e8b4c5430d"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := ArtifactKey(tc.url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key != tc.key {
				t.Fatalf("key mismatch for %s: expected %s got %s", tc.url, tc.key, key)
			}
		})
	}
}

func TestDeriveArtifactPathLayout(t *testing.T) {
	root := t.TempDir()
	got, err := DeriveArtifactPath(root, "https://example.com/")
	if err != nil {
		t.Fatalf("derive error: %v", err)
	}
	want := filepath.Join(root, "7", "93", "0c6d84446df30d38c2c682134d5ee937")
	if got != want {
		t.Fatalf("expected %s got %s", want, got)
	}

	rel, err := filepath.Rel(root, got)
	if err != nil {
		t.Fatalf("rel error: %v", err)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 || len(parts[0]) != 1 || len(parts[1]) != 2 || len(parts[2]) != 32 {
		t.Fatalf("unexpected shard layout: %v", parts)
	}
	if !strings.HasSuffix(parts[2], parts[1]+parts[0]) {
		t.Fatalf("key %s should end with %s%s", parts[2], parts[1], parts[0])
	}
}

func TestDeriveArtifactPathIsDeterministic(t *testing.T) {
	root := "/var/cache/nginx"
	first, err := DeriveArtifactPath(root, "http://example.com/blog/hello-world/")
	if err != nil {
		t.Fatalf("derive error: %v", err)
	}
	second, err := DeriveArtifactPath(root, "http://example.com/blog/hello-world/")
	if err != nil {
		t.Fatalf("derive error: %v", err)
	}
	if first != second {
		t.Fatalf("derive should be deterministic: %s != %s", first, second)
	}
}

func TestNormalizeURLIsIdempotent(t *testing.T) {
	once, err := NormalizeURL("https://example.com/shop/item%20one")
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	twice, err := NormalizeURL(once.String())
	if err != nil {
		t.Fatalf("normalize error: %v", err)
	}
	if once.String() != twice.String() {
		t.Fatalf("normalize should be idempotent: %s != %s", once, twice)
	}
	if once.EscapedPath() != "/shop/item%20one/" {
		t.Fatalf("path should stay escaped, got %s", once.EscapedPath())
	}
}

func TestArtifactKeyRejectsInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "/relative/path", "example.com/no-scheme", "https:///missing-host"} {
		if _, err := ArtifactKey(raw); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL for %q, got %v", raw, err)
		}
	}
}

func TestArtifactKeyHashesPercentEncodedPath(t *testing.T) {
	const want = "439b30c076bc767b7f507ef8ff5d4bde" // md5("httpsGETexample.com/caf%C3%A9/")

	for _, raw := range []string{"https://example.com/café", "https://example.com/caf%C3%A9/"} {
		normalized, err := NormalizeURL(raw)
		if err != nil {
			t.Fatalf("normalize %s: %v", raw, err)
		}
		if got := normalized.EscapedPath(); got != "/caf%C3%A9/" {
			t.Fatalf("expected escaped path /caf%%C3%%A9/ for %s, got %s", raw, got)
		}
		key, err := ArtifactKey(raw)
		if err != nil {
			t.Fatalf("key %s: %v", raw, err)
		}
		if key != want {
			t.Fatalf("key mismatch for %s: expected %s got %s", raw, want, key)
		}
	}
}
