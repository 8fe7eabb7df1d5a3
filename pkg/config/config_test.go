package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDoc = `
components:
  math:
    path: ./math.wasm
    description: "arithmetic tools"
    env:
      LOG_LEVEL: info
  net:
    oci: ghcr.io/example/net-component:1.2.0
prompts:
  - name: welcome
    description: "Greets a new session"
    content: "Hello!"
cache_backend:
  kind: s3
  options:
    bucket: wasmctl-components
    region: us-west-2
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wasmctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Components, 2)
	require.Equal(t, "./math.wasm", doc.Components["math"].Path)
	require.Equal(t, "info", doc.Components["math"].Env["LOG_LEVEL"])
	require.Equal(t, "ghcr.io/example/net-component:1.2.0", doc.Components["net"].OCI)
	require.Len(t, doc.Prompts, 1)
	require.Equal(t, "welcome", doc.Prompts[0].Name)
	require.NotNil(t, doc.CacheBackend)
	require.Equal(t, "s3", doc.CacheBackend.Kind)
	require.Equal(t, "wasmctl-components", doc.CacheBackend.Options["bucket"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/wasmctl.yaml")
	require.Error(t, err)
}
