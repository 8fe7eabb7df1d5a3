// Package sandbox builds the per-call capability context consumed by the
// host runtime when instantiating a component (C5 Sandbox Builder).
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wasmctl/wasmctl/pkg/wasmerr"
)

// VolumeMount describes one host directory or file made available to a
// guest instance.
type VolumeMount struct {
	HostPath  string
	GuestPath string
	ReadOnly  bool
}

// Config is the subset of a component's configuration the sandbox builder
// consumes.
type Config struct {
	Cwd     string
	Volumes []VolumeMount
	Env     map[string]string
}

// PreOpen is one directory pre-opened into the guest's filesystem view.
type PreOpen struct {
	HostPath  string
	GuestPath string
	ReadOnly  bool
}

// CapabilityContext is the single-use capability set attached to one
// instance: pre-opened directories, environment, stdio inheritance, and an
// outbound-HTTP capability. It must never be shared across invocations.
type CapabilityContext struct {
	InheritStdio bool
	InheritArgs  bool
	PreOpens     []PreOpen
	Env          map[string]string
	HTTPEnabled  bool
}

// Build constructs a fresh CapabilityContext from a component's
// configuration, validating every precondition named in the design: a
// configured cwd or volume host_path must exist, in declared order.
// Violations are reported as InvalidArguments, never Execution.
//
// ReadOnly is recorded on each PreOpen but not enforced here — it is
// advisory only, per the open question this spec leaves unresolved.
func Build(cfg Config) (*CapabilityContext, error) {
	ctx := &CapabilityContext{
		InheritStdio: true,
		InheritArgs:  true,
		Env:          map[string]string{},
		HTTPEnabled:  true,
	}

	if cfg.Cwd != "" {
		info, err := os.Stat(cfg.Cwd)
		if err != nil || !info.IsDir() {
			return nil, wasmerr.InvalidArguments(fmt.Sprintf("cwd %q does not exist or is not a directory", cfg.Cwd)).WithDetail("cwd", cfg.Cwd)
		}
		ctx.PreOpens = append(ctx.PreOpens, PreOpen{HostPath: cfg.Cwd, GuestPath: ".", ReadOnly: false})
	}

	for _, vm := range cfg.Volumes {
		info, err := os.Stat(vm.HostPath)
		if err != nil {
			return nil, wasmerr.InvalidArguments(fmt.Sprintf("volume host_path %q does not exist", vm.HostPath)).WithDetail("host_path", vm.HostPath)
		}
		if info.IsDir() {
			ctx.PreOpens = append(ctx.PreOpens, PreOpen{HostPath: vm.HostPath, GuestPath: vm.GuestPath, ReadOnly: vm.ReadOnly})
			continue
		}
		parent := filepath.Dir(vm.HostPath)
		if parent == vm.HostPath {
			return nil, wasmerr.InvalidArguments(fmt.Sprintf("volume host_path %q has no parent directory", vm.HostPath)).WithDetail("host_path", vm.HostPath)
		}
		ctx.PreOpens = append(ctx.PreOpens, PreOpen{HostPath: parent, GuestPath: vm.GuestPath, ReadOnly: vm.ReadOnly})
	}

	for k, v := range cfg.Env {
		ctx.Env[k] = v
	}

	return ctx, nil
}
