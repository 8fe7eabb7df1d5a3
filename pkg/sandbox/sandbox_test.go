package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wasmctl/wasmctl/pkg/wasmerr"
)

func TestBuild_EmptyConfig(t *testing.T) {
	ctx, err := Build(Config{})
	if err != nil {
		t.Fatalf("Build(empty) failed: %v", err)
	}
	if !ctx.InheritStdio || !ctx.HTTPEnabled {
		t.Error("expected stdio inheritance and HTTP capability by default")
	}
}

func TestBuild_MissingCwd(t *testing.T) {
	_, err := Build(Config{Cwd: "/nonexistent/path/for/test"})
	if err == nil {
		t.Fatal("expected error for missing cwd")
	}
	if !wasmerr.Is(err, wasmerr.CodeInvalidArguments) {
		t.Errorf("expected InvalidArguments, got %v", err)
	}
}

func TestBuild_VolumeMounts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(file, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, err := Build(Config{Volumes: []VolumeMount{
		{HostPath: dir, GuestPath: "/tmp", ReadOnly: false},
		{HostPath: file, GuestPath: "/tmp/test.txt", ReadOnly: true},
	}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(ctx.PreOpens) != 2 {
		t.Fatalf("expected 2 pre-opens, got %d", len(ctx.PreOpens))
	}
	if ctx.PreOpens[1].HostPath != dir {
		t.Errorf("file mount should pre-open its parent dir, got %q", ctx.PreOpens[1].HostPath)
	}
}

func TestBuild_InvalidVolumePath(t *testing.T) {
	_, err := Build(Config{Volumes: []VolumeMount{{HostPath: "/nonexistent", GuestPath: "/tmp"}}})
	if err == nil {
		t.Fatal("expected error for nonexistent volume host_path")
	}
}

func TestBuild_EmptyVolumes(t *testing.T) {
	_, err := Build(Config{Volumes: []VolumeMount{}})
	if err != nil {
		t.Fatalf("empty volumes should succeed: %v", err)
	}
}
