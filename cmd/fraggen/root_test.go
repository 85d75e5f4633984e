package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startFakeCMS(t *testing.T) *httptest.Server {
	t.Helper()

	bodies := map[string]string{
		"sections.hero-banner": `{"data":{"uid":"sections.hero-banner","schema":{"attributes":{
			"title": {"type": "string"},
			"image": {"type": "media"},
			"card":  {"type": "component", "component": "shared.card"}}}}}`,
		"shared.card": `{"data":{"uid":"shared.card","schema":{"attributes":{
			"text": {"type": "string"}}}}}`,
	}

	r := chi.NewRouter()
	r.Get("/api/content-type-builder/components/{uid}", func(w http.ResponseWriter, req *http.Request) {
		body, ok := bodies[chi.URLParam(req, "uid")]
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateEndToEnd(t *testing.T) {
	srv := startFakeCMS(t)
	dir := t.TempDir()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"-i", "sections.hero-banner", "--url", srv.URL, "--dir", dir})
	require.NoError(t, cmd.Execute())

	fragment, err := os.ReadFile(filepath.Join(dir, "graphql", "fragments", "sections", "heroBanner.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(fragment), "fragment HeroBanner on ComponentSectionsHeroBanner {")
	assert.Contains(t, string(fragment), "card { text }")

	barrel, err := os.ReadFile(filepath.Join(dir, "graphql", "fragments", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export { HeroBanner } from './sections/heroBanner';\n", string(barrel))

	_, err = os.Stat(filepath.Join(dir, "components", "sections", "HeroBanner.vue"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "components", "sections", "heroBanner.types.ts"))
	assert.NoError(t, err)
}

func TestDryRunWritesNothing(t *testing.T) {
	srv := startFakeCMS(t)
	dir := t.TempDir()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"-i", "sections.hero-banner", "--url", srv.URL, "--dir", dir, "--dry-run"})
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnresolvableComponentWritesNothing(t *testing.T) {
	bodies := map[string]string{
		"sections.hero": `{"data":{"uid":"sections.hero","schema":{"attributes":{
			"card": {"type": "component", "component": "ns.missing"}}}}}`,
	}
	r := chi.NewRouter()
	r.Get("/api/content-type-builder/components/{uid}", func(w http.ResponseWriter, req *http.Request) {
		body, ok := bodies[chi.URLParam(req, "uid")]
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-i", "sections.hero", "--url", srv.URL, "--dir", dir})
	require.Error(t, cmd.Execute())

	// No fragment with an empty selection set, no barrel entry.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInvalidIdentifierFailsBeforeFetch(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	// No server running on the default URL: validation must fail first.
	cmd.SetArgs([]string{"-i", "not-an-identifier", "--dir", t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-an-identifier")
}
