package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// enrichConfig writes a config whose enrichment list points at the
// given source URL.
func enrichConfig(t *testing.T, url string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vertix.yaml")
	contents := fmt.Sprintf(
		"data_dir: %s\nlog_level: error\nenrichment:\n  - name: specs\n    url: %s\n",
		filepath.Join(dir, "data"), url)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestEnrichContactsEachSourceOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[{"id": "ext-gpu-1", "name": "External GPU", "price": 499.99, "stock": 3}]`))
	}))
	t.Cleanup(srv.Close)

	out, err := runVertix(t, enrichConfig(t, srv.URL), "enrich")
	require.NoError(t, err)

	assert.Contains(t, out, "specs: 1 products")
	assert.Contains(t, out, "gathered 1 products")
	assert.Equal(t, int32(1), hits.Load(), "one run gets one attempt per source")
}

func TestEnrichApplyMatchesSummary(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// A flaky source: only the first request succeeds. The summary
		// and the applied set must still agree because both come from
		// the same attempt.
		if hits.Add(1) > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"id": "ext-gpu-1", "name": "External GPU", "price": 499.99, "stock": 3}]`))
	}))
	t.Cleanup(srv.Close)
	cfg := enrichConfig(t, srv.URL)

	out, err := runVertix(t, cfg, "enrich", "--apply")
	require.NoError(t, err)
	assert.Contains(t, out, "specs: 1 products")
	assert.Contains(t, out, "applied 1 products")
	assert.Equal(t, int32(1), hits.Load())

	out, err = runVertix(t, cfg, "products", "get", "ext-gpu-1")
	require.NoError(t, err)
	assert.Contains(t, out, "External GPU")
}
