package ociresolve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmctl/wasmctl/pkg/component"
	"github.com/wasmctl/wasmctl/pkg/wasmerr"
)

func TestResolve_LocalPath(t *testing.T) {
	dir := t.TempDir()
	wasmPath := filepath.Join(dir, "math.wasm")
	require.NoError(t, os.WriteFile(wasmPath, []byte("fake"), 0o644))

	r := New(t.TempDir())
	got, err := r.Resolve(context.Background(), component.Config{Path: wasmPath})
	require.NoError(t, err)
	assert.Equal(t, wasmPath, got)
}

func TestResolve_MissingLocalPath(t *testing.T) {
	r := New(t.TempDir())
	_, err := r.Resolve(context.Background(), component.Config{Path: "/nonexistent/math.wasm"})
	require.Error(t, err)
	assert.True(t, wasmerr.Is(err, wasmerr.CodeInvalidArguments))
}

func TestResolve_MissingConfiguration(t *testing.T) {
	r := New(t.TempDir())
	_, err := r.Resolve(context.Background(), component.Config{})
	require.Error(t, err)
	assert.True(t, wasmerr.Is(err, wasmerr.CodeInvalidArguments))
}

func TestBuildRemoteBackend_Unset(t *testing.T) {
	backend, err := BuildRemoteBackend(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Nil(t, backend)
}

func TestBuildRemoteBackend_UnknownKind(t *testing.T) {
	_, err := BuildRemoteBackend(context.Background(), "swamp", nil)
	require.Error(t, err)
}
